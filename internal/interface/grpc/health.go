// Package grpc 对内的gRPC服务
//
// 目前只暴露标准健康检查(grpc.health.v1)，供负载均衡和k8s探针使用：
//
//	grpcurl -plaintext localhost:9090 grpc.health.v1.Health/Check
package grpc

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
	"gorm.io/gorm"
)

// ServiceName 对外报告状态的服务名，空字符串表示整个进程
const ServiceName = "grocery.api"

const (
	defaultInterval = 10 * time.Second
	probeTimeout    = 2 * time.Second
)

// HealthServer 定期探测MySQL和Redis，任一不可用即报告NOT_SERVING
type HealthServer struct {
	server   *grpc.Server
	health   *health.Server
	db       *gorm.DB
	rdb      *goredis.Client
	interval time.Duration
}

// NewHealthServer 创建健康检查服务
func NewHealthServer(db *gorm.DB, rdb *goredis.Client) *HealthServer {
	s := grpc.NewServer()
	h := health.NewServer()
	healthpb.RegisterHealthServer(s, h)
	reflection.Register(s)

	return &HealthServer{
		server:   s,
		health:   h,
		db:       db,
		rdb:      rdb,
		interval: defaultInterval,
	}
}

// Check 执行一次探测并更新状态
func (s *HealthServer) Check(ctx context.Context) healthpb.HealthCheckResponse_ServingStatus {
	status := healthpb.HealthCheckResponse_SERVING
	if err := s.probe(ctx); err != nil {
		slog.WarnContext(ctx, "健康检查失败", "error", err)
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}

	s.health.SetServingStatus("", status)
	s.health.SetServingStatus(ServiceName, status)
	return status
}

func (s *HealthServer) probe(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("获取SQL DB失败: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("MySQL不可用: %w", err)
	}
	if err := s.rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("Redis不可用: %w", err)
	}
	return nil
}

// Serve 在lis上提供服务，阻塞直到ctx取消
// ctx取消后先把状态置为NOT_SERVING，再优雅停止
func (s *HealthServer) Serve(ctx context.Context, lis net.Listener) error {
	s.Check(ctx)
	go s.watch(ctx)

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.server.Serve(lis)
	}()

	slog.Info("gRPC健康检查服务启动", "addr", lis.Addr().String())

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.health.Shutdown()
		s.server.GracefulStop()
		return nil
	}
}

func (s *HealthServer) watch(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Check(ctx)
		}
	}
}
