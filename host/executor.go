package host

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/reglet-dev/rosmsg-sdk/go/application/config"
	"github.com/reglet-dev/rosmsg-sdk/go/application/stringmsg"
	"github.com/reglet-dev/rosmsg-sdk/go/domain/entities"
	"github.com/reglet-dev/rosmsg-sdk/go/domain/msg"
	"github.com/reglet-dev/rosmsg-sdk/go/hostfuncs"
	"github.com/reglet-dev/rosmsg-sdk/go/infrastructure/arena"
	wazeroadapter "github.com/reglet-dev/rosmsg-sdk/go/infrastructure/wazero"
	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"
)

// Executor manages the WASM runtime and the string-message host module.
type Executor struct {
	runtime        wazero.Runtime
	registry       *hostfuncs.HandlerRegistry
	adapter        *stringmsg.Adapter
	logger         *slog.Logger
	registerer     prometheus.Registerer
	config         entities.Config
	metricsEnabled bool
	tracing        bool
}

// NewExecutor creates a new executor with the given options.
// The configuration is validated first; violations are returned as
// *errors.ConfigError.
func NewExecutor(ctx context.Context, opts ...Option) (*Executor, error) {
	e := &Executor{
		config: entities.DefaultConfig(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}

	if err := config.Validate(e.config); err != nil {
		return nil, err
	}

	if e.registry == nil {
		if err := e.buildDefaultRegistry(); err != nil {
			return nil, err
		}
	}

	rt := wazero.NewRuntime(ctx)
	wasi_snapshot_preview1.MustInstantiate(ctx, rt)
	e.runtime = rt

	err := wazeroadapter.RegisterWithRuntime(ctx, rt, e.registry,
		wazeroadapter.WithModuleName(e.config.ModuleName),
		wazeroadapter.WithMaxRequestSize(e.config.MaxRequestSize),
		wazeroadapter.WithLogger(e.logger),
		wazeroadapter.WithLogMessageHandler(e.logger),
	)
	if err != nil {
		_ = rt.Close(ctx)
		return nil, fmt.Errorf("failed to register host functions: %w", err)
	}

	return e, nil
}

func (e *Executor) buildDefaultRegistry() error {
	store := arena.New[msg.String](msg.TypeName, arena.WithLimit(e.config.MaxHandles))
	adapter, err := stringmsg.New(store, e.config, stringmsg.WithLogger(e.logger))
	if err != nil {
		return fmt.Errorf("failed to create string message adapter: %w", err)
	}

	middleware := []hostfuncs.Middleware{
		hostfuncs.PanicRecoveryMiddleware(),
		hostfuncs.LoggingMiddleware(e.logger),
	}
	if e.metricsEnabled {
		metrics := hostfuncs.NewMetrics(e.registerer).WithLiveHandles(adapter.Live)
		if err := metrics.Register(); err != nil {
			return fmt.Errorf("failed to register metrics: %w", err)
		}
		middleware = append(middleware, hostfuncs.MetricsMiddleware(metrics))
	}
	if e.tracing {
		middleware = append(middleware, hostfuncs.TracingMiddleware(hostfuncs.DefaultTracerName))
	}

	registry, err := hostfuncs.NewRegistry(
		hostfuncs.WithMaxRequestSize(e.config.MaxRequestSize),
		hostfuncs.WithMiddleware(middleware...),
		hostfuncs.WithBundle(hostfuncs.AllBundles(adapter)),
	)
	if err != nil {
		return fmt.Errorf("failed to create default registry: %w", err)
	}

	e.adapter = adapter
	e.registry = registry
	return nil
}

// Registry returns the host function registry exported to guests.
func (e *Executor) Registry() *hostfuncs.HandlerRegistry {
	return e.registry
}

// Adapter returns the string-message adapter behind the default registry,
// or nil when a custom registry was supplied.
func (e *Executor) Adapter() *stringmsg.Adapter {
	return e.adapter
}

// Close releases every live record and the runtime.
func (e *Executor) Close(ctx context.Context) error {
	if e.adapter != nil {
		if n := e.adapter.Close(); n > 0 {
			e.logger.DebugContext(ctx, "released records on close", "count", n)
		}
	}
	return e.runtime.Close(ctx)
}

// Instance represents an instantiated WASM guest.
type Instance struct {
	module api.Module
}

// LoadModule instantiates a WASM guest under name.
func (e *Executor) LoadModule(ctx context.Context, name string, wasmBytes []byte) (*Instance, error) {
	cfg := wazero.NewModuleConfig().WithName(name)
	mod, err := e.runtime.InstantiateWithConfig(ctx, wasmBytes, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to instantiate module %q: %w", name, err)
	}

	// Reactor modules export _initialize instead of running _start.
	if init := mod.ExportedFunction("_initialize"); init != nil {
		if _, err := init.Call(ctx); err != nil {
			_ = mod.Close(ctx)
			return nil, fmt.Errorf("failed to call _initialize: %w", err)
		}
	}

	return &Instance{module: mod}, nil
}

// Name returns the guest's module name.
func (i *Instance) Name() string {
	return i.module.Name()
}

// Call invokes a guest export taking and returning packed ptr+len JSON.
// A nil input calls the export without arguments.
func (i *Instance) Call(ctx context.Context, export string, input []byte) ([]byte, error) {
	packed, err := i.callRaw(ctx, export, input)
	if err != nil {
		return nil, err
	}
	return i.readPacked(ctx, packed)
}

// Close closes the guest module.
func (i *Instance) Close(ctx context.Context) error {
	return i.module.Close(ctx)
}
