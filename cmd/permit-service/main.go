package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/FleetGate/FleetGate/internal/common/config"
	"github.com/FleetGate/FleetGate/internal/common/db"
	"github.com/FleetGate/FleetGate/internal/common/logger"
	"github.com/FleetGate/FleetGate/internal/common/server"
	"github.com/FleetGate/FleetGate/internal/common/tracing"
	"github.com/FleetGate/FleetGate/internal/employee"
	"github.com/FleetGate/FleetGate/internal/export"
	"github.com/FleetGate/FleetGate/internal/notify"
	"github.com/FleetGate/FleetGate/internal/permit"
	"github.com/FleetGate/FleetGate/internal/user"
)

var (
	configPath   = flag.String("config", "configs/permit-service.json", "配置文件路径")
	consulCfgKey = flag.String("consul-config-key", "", "从 Consul KV 读取配置的 key（优先于本地文件）")
	seedData     = flag.Bool("seed", false, "员工表为空时写入示例员工数据")
)

func main() {
	flag.Parse()

	// 加载配置
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	// 指定了 Consul KV key 时，用 KV 中的配置整体覆盖本地配置
	if *consulCfgKey != "" {
		kvCfg, err := config.LoadConfigFromConsulKV(cfg.Consul.Host, cfg.Consul.Port, *consulCfgKey)
		if err != nil {
			panic(fmt.Sprintf("failed to load config from consul kv: %v", err))
		}
		cfg = kvCfg
	}

	// 初始化日志
	log, err := logger.NewLogger(cfg.Log.Driver, cfg.Log.Level, cfg.Log.Format, cfg.Log.Output, cfg.Log.Path)
	if err != nil {
		panic(fmt.Sprintf("failed to init logger: %v", err))
	}

	// 初始化链路追踪
	tracer, closer, err := tracing.InitTracer(
		cfg.Server.Name,
		cfg.Jaeger.Endpoint,
		cfg.Jaeger.Sampler,
	)
	if err != nil {
		log.Warnf("failed to init tracer: %v", err)
	} else {
		defer closer.Close()
	}
	_ = tracer

	// 初始化数据库
	gormDB, err := db.NewMySQL(
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Database,
		cfg.Database.MaxIdle,
		cfg.Database.MaxOpen,
	)
	if err != nil {
		log.Fatalf("failed to init mysql: %v", err)
	}
	if err := gormDB.AutoMigrate(&employee.Employee{}, &permit.Permit{}, &user.User{}); err != nil {
		log.Fatalf("failed to migrate mysql schema: %v", err)
	}

	// 组装领域服务
	employeeRepo := employee.NewRepo(gormDB)
	employeeSvc := employee.NewService(employeeRepo)

	permitRepo := permit.NewRepo(gormDB)
	notifier := notify.NewWhatsAppMock(log)
	permitSvc := permit.NewService(permitRepo, employeeSvc, notifier)

	exportSvc := export.NewService(permitRepo)

	userRepo := user.NewRepo(gormDB)
	userSvc := user.NewService(userRepo, cfg.Auth)

	ctx := context.Background()

	// 初始管理员（users 表为空时创建）
	if err := userSvc.Bootstrap(ctx, log); err != nil {
		log.Warnf("failed to bootstrap admin user: %v", err)
	}

	// 示例员工数据（可选）
	if *seedData {
		if err := seedEmployees(ctx, employeeRepo, log); err != nil {
			log.Warnf("failed to seed employees: %v", err)
		}
	}

	app := &application{
		cfg:       cfg,
		log:       log,
		employees: employee.NewHandler(employeeSvc),
		permits:   permit.NewHandler(permitSvc),
		exports:   export.NewHandler(exportSvc),
		users:     user.NewHandler(userSvc),

		employeeSvc: employeeSvc,
		permitSvc:   permitSvc,
	}

	// 启动统一的 HTTP 服务模板
	if err := server.RunHTTPServer(cfg, log, app.registerRoutes,
		server.WithCORSOrigins([]string{"http://localhost:3000"}),
	); err != nil {
		log.Fatalf("permit-service exited with error: %v", err)
	}
}
