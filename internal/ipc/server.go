package ipc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"os"
	"strings"
	"sync"

	"fabline/internal/daemon"
	"fabline/internal/logging"
	"fabline/internal/reconcile"
)

// Server exposes daemon control via JSON-RPC over a Unix domain socket.
type Server struct {
	path      string
	logger    *slog.Logger
	listener  net.Listener
	rpcServer *rpc.Server

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewServer configures the IPC server at the given socket path.
func NewServer(ctx context.Context, path string, d *daemon.Daemon, logger *slog.Logger) (*Server, error) {
	if d == nil {
		return nil, errors.New("ipc server requires daemon")
	}
	logger = logging.NewComponentLogger(logger, "ipc")

	if err := os.RemoveAll(path); err != nil {
		return nil, fmt.Errorf("remove existing socket: %w", err)
	}

	listener, err := net.Listen("unix", path)
	if err != nil {
		return nil, fmt.Errorf("listen on socket: %w", err)
	}

	rpcServer := rpc.NewServer()
	if err := rpcServer.RegisterName("Fabline", &service{daemon: d}); err != nil {
		listener.Close()
		return nil, fmt.Errorf("register rpc service: %w", err)
	}

	serverCtx, cancel := context.WithCancel(ctx)
	return &Server{
		path:      path,
		logger:    logger,
		listener:  listener,
		rpcServer: rpcServer,
		ctx:       serverCtx,
		cancel:    cancel,
	}, nil
}

// Serve starts accepting RPC connections until the context is canceled.
func (s *Server) Serve() {
	s.logger.Debug("IPC server listening", logging.String("socket", s.path))
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		for {
			conn, err := s.listener.Accept()
			if err != nil {
				select {
				case <-s.ctx.Done():
					return
				default:
				}
				s.logger.Warn("accept failed", logging.Error(err))
				continue
			}
			s.wg.Add(1)
			go func(c net.Conn) {
				defer s.wg.Done()
				s.rpcServer.ServeCodec(jsonrpc.NewServerCodec(c))
			}(conn)
		}
	}()
}

// Close stops the server and removes the socket file.
func (s *Server) Close() {
	s.cancel()
	if s.listener != nil {
		_ = s.listener.Close()
	}
	s.wg.Wait()
	if err := os.RemoveAll(s.path); err != nil {
		s.logger.Warn("failed to remove socket",
			logging.String("socket", s.path),
			logging.Error(err),
		)
	}
}

// service implements the RPC methods. net/rpc requires the (args, reply)
// signature shape.
type service struct {
	daemon *daemon.Daemon
}

func (s *service) Status(_ StatusRequest, reply *StatusResponse) error {
	status := s.daemon.Status()
	events := make([]StageChange, 0, len(status.RecentEvents))
	for _, ev := range status.RecentEvents {
		events = append(events, fromStageChange(ev))
	}
	*reply = StatusResponse{
		Running:        status.Running,
		TrackedOrders:  status.TrackedOrders,
		PendingChanges: status.PendingChanges,
		RecentEvents:   events,
		LockPath:       status.LockFilePath,
		DirectoryPath:  status.DirectoryPath,
		PID:            os.Getpid(),
	}
	return nil
}

func (s *service) Track(req TrackRequest, reply *TrackResponse) error {
	orderID := strings.TrimSpace(req.OrderID)
	if orderID == "" {
		return errors.New("order id is required")
	}
	s.daemon.Tracker().Track(orderID)
	reply.TrackedOrders = s.daemon.Tracker().Tracked()
	return nil
}

func (s *service) Untrack(req UntrackRequest, reply *UntrackResponse) error {
	orderID := strings.TrimSpace(req.OrderID)
	if orderID == "" {
		return errors.New("order id is required")
	}
	s.daemon.Tracker().Untrack(orderID)
	reply.TrackedOrders = s.daemon.Tracker().Tracked()
	return nil
}

func (s *service) Progress(req ProgressRequest, reply *ProgressResponse) error {
	orderID := strings.TrimSpace(req.OrderID)
	if orderID == "" {
		return errors.New("order id is required")
	}
	summary := s.daemon.Tracker().Progress(context.Background(), orderID)
	*reply = fromSummary(summary)
	return nil
}

func (s *service) Changes(_ ChangesRequest, reply *ChangesResponse) error {
	reply.Changes = fromChangeRecords(s.daemon.Queue().Pending())
	return nil
}

func (s *service) Retry(_ RetryRequest, reply *RetryResponse) error {
	s.daemon.Queue().RetryAll(context.Background())
	reply.PendingChanges = s.daemon.Queue().PendingCount()
	return nil
}

func (s *service) Employees(_ EmployeesRequest, reply *EmployeesResponse) error {
	records, err := s.daemon.Directory().List(context.Background())
	if err != nil {
		return fmt.Errorf("list employees: %w", err)
	}
	reply.Employees = make([]Employee, 0, len(records))
	for _, emp := range records {
		reply.Employees = append(reply.Employees, Employee{ID: emp.ID, Name: emp.Name, Role: emp.Role})
	}
	return nil
}

func (s *service) EmployeeSet(req EmployeeSetRequest, reply *EmployeeSetResponse) error {
	id := strings.TrimSpace(req.ID)
	if id == "" {
		return errors.New("employee id is required")
	}
	if strings.TrimSpace(req.Name) == "" {
		return errors.New("employee name is required")
	}

	ctx := context.Background()
	change, changed, err := s.daemon.Directory().RecordEdit(ctx, reconcile.Employee{
		ID:   id,
		Name: req.Name,
		Role: strings.TrimSpace(req.Role),
	})
	if err != nil {
		return fmt.Errorf("record employee edit: %w", err)
	}
	if changed {
		s.daemon.Queue().Enqueue(ctx, change)
		pending := fromChangeRecords([]reconcile.ChangeRecord{change})
		reply.Change = &pending[0]
	}

	stored, _, err := s.daemon.Directory().Get(ctx, id)
	if err != nil {
		return fmt.Errorf("load employee: %w", err)
	}
	reply.Employee = Employee{ID: stored.ID, Name: stored.Name, Role: stored.Role}
	reply.PendingChanges = s.daemon.Queue().PendingCount()
	return nil
}
