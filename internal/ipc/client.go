package ipc

import (
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"time"
)

// Client provides RPC access to the daemon.
type Client struct {
	conn   net.Conn
	client *rpc.Client
}

// Dial connects to the IPC server at the given socket path.
func Dial(path string) (*Client, error) {
	conn, err := net.DialTimeout("unix", path, 2*time.Second)
	if err != nil {
		return nil, err
	}
	rpcClient := rpc.NewClientWithCodec(jsonrpc.NewClientCodec(conn))
	return &Client{conn: conn, client: rpcClient}, nil
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	if c.client != nil {
		_ = c.client.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// Status retrieves the daemon status.
func (c *Client) Status() (*StatusResponse, error) {
	var resp StatusResponse
	if err := c.client.Call("Fabline.Status", StatusRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Track adds an order to the daemon's watch set.
func (c *Client) Track(orderID string) (*TrackResponse, error) {
	var resp TrackResponse
	if err := c.client.Call("Fabline.Track", TrackRequest{OrderID: orderID}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Untrack removes an order from the daemon's watch set.
func (c *Client) Untrack(orderID string) (*UntrackResponse, error) {
	var resp UntrackResponse
	if err := c.client.Call("Fabline.Untrack", UntrackRequest{OrderID: orderID}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Progress computes an order's completion summary.
func (c *Client) Progress(orderID string) (*ProgressResponse, error) {
	var resp ProgressResponse
	if err := c.client.Call("Fabline.Progress", ProgressRequest{OrderID: orderID}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Changes lists pending reconciliation changes.
func (c *Client) Changes() (*ChangesResponse, error) {
	var resp ChangesResponse
	if err := c.client.Call("Fabline.Changes", ChangesRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Retry forces an immediate reconciliation pass.
func (c *Client) Retry() (*RetryResponse, error) {
	var resp RetryResponse
	if err := c.client.Call("Fabline.Retry", RetryRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Employees lists the directory snapshot.
func (c *Client) Employees() (*EmployeesResponse, error) {
	var resp EmployeesResponse
	if err := c.client.Call("Fabline.Employees", EmployeesRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// EmployeeSet records an employee edit and queues any detected change.
func (c *Client) EmployeeSet(id, name, role string) (*EmployeeSetResponse, error) {
	var resp EmployeeSetResponse
	req := EmployeeSetRequest{ID: id, Name: name, Role: role}
	if err := c.client.Call("Fabline.EmployeeSet", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
