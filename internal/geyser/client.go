package geyser

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/connectivity"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/keepalive"
	"google.golang.org/grpc/metadata"
	"google.golang.org/protobuf/types/dynamicpb"
)

const (
	maxRecvMessageSize  = 64 << 20
	keepAliveAckTimeout = 20 * time.Second
	xTokenHeader        = "x-token"
)

// Config holds connection settings for a Geyser endpoint.
type Config struct {
	Endpoint       string
	XToken         string
	ConnectTimeout time.Duration
	KeepAlive      time.Duration
	Insecure       bool
}

// Client wraps a gRPC connection to a Geyser service.
type Client struct {
	conn   *grpc.ClientConn
	schema schemaSet
	xToken string
}

// Dial connects to the endpoint and waits until the channel is ready or the
// connect timeout elapses. Extra options are appended after the defaults.
func Dial(ctx context.Context, cfg Config, opts ...grpc.DialOption) (*Client, error) {
	schema, err := loadSchema()
	if err != nil {
		return nil, err
	}

	target, useTLS, err := parseEndpoint(cfg.Endpoint)
	if err != nil {
		return nil, err
	}
	if cfg.Insecure {
		useTLS = false
	}

	creds := insecure.NewCredentials()
	if useTLS {
		creds = credentials.NewTLS(&tls.Config{MinVersion: tls.VersionTLS12})
	}

	dialOpts := []grpc.DialOption{
		grpc.WithTransportCredentials(creds),
		grpc.WithDefaultCallOptions(grpc.MaxCallRecvMsgSize(maxRecvMessageSize)),
	}
	if cfg.KeepAlive > 0 {
		dialOpts = append(dialOpts, grpc.WithKeepaliveParams(keepalive.ClientParameters{
			Time:                cfg.KeepAlive,
			Timeout:             keepAliveAckTimeout,
			PermitWithoutStream: true,
		}))
	}
	dialOpts = append(dialOpts, opts...)

	conn, err := grpc.NewClient(target, dialOpts...)
	if err != nil {
		return nil, fmt.Errorf("grpc client: %w", err)
	}
	if err := waitReady(ctx, conn, cfg.ConnectTimeout); err != nil {
		conn.Close()
		return nil, err
	}

	return &Client{conn: conn, schema: schema, xToken: cfg.XToken}, nil
}

// Close closes the underlying connection and every stream on it.
func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

// Subscribe opens the bidi subscription and sends the filter as the first
// request. The stream lives until ctx ends, the server closes it or Recv
// fails. Callers that stop reading early must cancel ctx to release it.
func (c *Client) Subscribe(ctx context.Context, filter Filter) (Stream, error) {
	if c.xToken != "" {
		ctx = metadata.AppendToOutgoingContext(ctx, xTokenHeader, c.xToken)
	}
	ctx, cancel := context.WithCancel(ctx)

	desc := &grpc.StreamDesc{StreamName: "Subscribe", ServerStreams: true, ClientStreams: true}
	cs, err := c.conn.NewStream(ctx, desc, SubscribeMethod)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("open subscribe stream: %w", err)
	}
	if err := cs.SendMsg(c.schema.newRequest(filter)); err != nil {
		cancel()
		return nil, fmt.Errorf("send subscribe request: %w", err)
	}
	return &subscription{stream: cs, schema: c.schema, cancel: cancel}, nil
}

type subscription struct {
	stream grpc.ClientStream
	schema schemaSet
	cancel context.CancelFunc
}

func (s *subscription) Send(msg ControlMsg) error {
	return s.stream.SendMsg(s.schema.newControl(msg))
}

func (s *subscription) Recv() (*Update, error) {
	msg := dynamicpb.NewMessage(s.schema.subscribeUpdate)
	if err := s.stream.RecvMsg(msg); err != nil {
		// the stream is finished once RecvMsg fails
		s.cancel()
		return nil, err
	}
	return s.schema.decodeUpdate(msg), nil
}

func (s *subscription) CloseSend() error {
	return s.stream.CloseSend()
}

// parseEndpoint maps http(s) URLs to host:port targets. Anything else is
// handed to gRPC as a target string and defaults to TLS.
func parseEndpoint(endpoint string) (string, bool, error) {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return "", false, errors.New("endpoint is empty")
	}

	u, err := url.Parse(endpoint)
	if err != nil || u.Host == "" || (u.Scheme != "https" && u.Scheme != "http") {
		return endpoint, true, nil
	}

	port := u.Port()
	if port == "" {
		port = "443"
		if u.Scheme == "http" {
			port = "80"
		}
	}
	return net.JoinHostPort(u.Hostname(), port), u.Scheme == "https", nil
}

func waitReady(ctx context.Context, conn *grpc.ClientConn, timeout time.Duration) error {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	conn.Connect()
	for {
		state := conn.GetState()
		switch state {
		case connectivity.Ready:
			return nil
		case connectivity.Shutdown:
			return errors.New("connect: connection shut down")
		}
		if !conn.WaitForStateChange(ctx, state) {
			return fmt.Errorf("connect: %w", ctx.Err())
		}
	}
}
