package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	clientv3 "go.etcd.io/etcd/client/v3"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/keepalive"

	"github.com/ZeroLiu2018/mcbench/config"
	"github.com/ZeroLiu2018/mcbench/constants"
)

// segmentRecord is the registration payload written to the metadata plane
// during setup, so a master can discover the benchmark segment.
type segmentRecord struct {
	RunID             string `json:"run_id"`
	Hostname          string `json:"hostname"`
	Protocol          string `json:"protocol"`
	DeviceName        string `json:"device_name,omitempty"`
	MasterServer      string `json:"master_server"`
	GlobalSegmentSize int64  `json:"global_segment_size"`
	LocalBufferSize   int64  `json:"local_buffer_size"`
	RegisteredAtUnix  int64  `json:"registered_at_unix"`
}

// EtcdStore drives Put/Get against the etcd-compatible metadata plane of the
// store. A per-request timeout is applied inside each call; the harness itself
// never retries.
type EtcdStore struct {
	client         *clientv3.Client
	requestTimeout time.Duration
	runID          string
	segmentKey     string
}

// Connect establishes the single store handle shared by all workers and
// performs the setup handshake: dial the metadata server, register this host's
// segment, and verify the registration round-trips. Any failure is fatal and
// carries a non-zero status code.
func Connect(ctx context.Context, cfg *config.BenchConfig) (*EtcdStore, error) {
	dialOpts := []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithKeepaliveParams(keepalive.ClientParameters{
			Time:                30 * time.Second, // send pings every 30 seconds if there is no activity
			Timeout:             60 * time.Second, // wait 60 seconds for ping responses
			PermitWithoutStream: true,
		}),
	}

	cli, err := clientv3.New(clientv3.Config{
		Endpoints:   []string{cfg.MetadataServer},
		DialTimeout: time.Duration(cfg.DialTimeout),
		DialOptions: dialOpts,
		Logger:      zap.NewNop(),
	})
	if err != nil {
		return nil, &SetupError{Code: -4, Err: fmt.Errorf("dialing metadata server %s: %w", cfg.MetadataServer, err)}
	}

	s := &EtcdStore{
		client:         cli,
		requestTimeout: time.Duration(cfg.RequestTimeout),
		runID:          uuid.New().String(),
		segmentKey:     constants.SEGMENT_PREFIX + cfg.LocalHostname,
	}

	if err := s.setup(ctx, cfg); err != nil {
		cli.Close()
		code, _ := ErrInfo(err)
		if code == 0 {
			code = -4
		}
		return nil, &SetupError{Code: code, Err: err}
	}
	return s, nil
}

func (s *EtcdStore) setup(ctx context.Context, cfg *config.BenchConfig) error {
	rec := segmentRecord{
		RunID:             s.runID,
		Hostname:          cfg.LocalHostname,
		Protocol:          cfg.Protocol,
		DeviceName:        cfg.DeviceName,
		MasterServer:      cfg.MasterServerAddress,
		GlobalSegmentSize: cfg.GlobalSegmentSize,
		LocalBufferSize:   cfg.LocalBufferSize,
		RegisteredAtUnix:  time.Now().Unix(),
	}
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encoding segment record: %w", err)
	}

	putCtx, cancel := context.WithTimeout(ctx, s.requestTimeout)
	defer cancel()
	if _, err := s.client.Put(putCtx, s.segmentKey, string(payload)); err != nil {
		return fmt.Errorf("registering segment %s: %w", s.segmentKey, err)
	}

	getCtx, cancel := context.WithTimeout(ctx, s.requestTimeout)
	defer cancel()
	resp, err := s.client.Get(getCtx, s.segmentKey)
	if err != nil {
		return fmt.Errorf("verifying segment %s: %w", s.segmentKey, err)
	}
	if len(resp.Kvs) == 0 {
		return fmt.Errorf("segment %s missing after registration", s.segmentKey)
	}
	return nil
}

// RunID identifies this handle's setup registration.
func (s *EtcdStore) RunID() string { return s.runID }

func (s *EtcdStore) Put(ctx context.Context, key string, value []byte) error {
	reqCtx, cancel := context.WithTimeout(ctx, s.requestTimeout)
	defer cancel()
	_, err := s.client.Put(reqCtx, key, string(value))
	return err
}

func (s *EtcdStore) Get(ctx context.Context, key string) ([]byte, error) {
	reqCtx, cancel := context.WithTimeout(ctx, s.requestTimeout)
	defer cancel()
	resp, err := s.client.Get(reqCtx, key)
	if err != nil {
		return nil, err
	}
	if len(resp.Kvs) == 0 {
		return nil, ErrKeyNotFound
	}
	return resp.Kvs[0].Value, nil
}

// Close deregisters the segment (best effort) and closes the client.
func (s *EtcdStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.requestTimeout)
	defer cancel()
	s.client.Delete(ctx, s.segmentKey)
	return s.client.Close()
}
