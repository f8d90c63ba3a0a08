// Command wlveil runs a transparent Wayland proxy in front of a child
// process: it listens on its own socket, forwards every client that
// connects to the real compositor subject to the loaded policy, spawns
// the child with WAYLAND_DISPLAY pointed at the proxy, and exits once
// the child does.
package main

import (
	"fmt"
	"net"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/veilproto/wlveil/internal/config"
	"github.com/veilproto/wlveil/internal/dispatch"
	"github.com/veilproto/wlveil/internal/endpoint"
	"github.com/veilproto/wlveil/internal/logging"
	"github.com/veilproto/wlveil/internal/session"
	"github.com/veilproto/wlveil/internal/wlerr"
	"github.com/veilproto/wlveil/proto"
	"github.com/veilproto/wlveil/veil"
)

// version is overridden at build time via -ldflags.
var version = "dev"

type flags struct {
	listen    string
	upstream  string
	config    string
	logLevel  string
	logPrefix string
}

var (
	errColor = color.New(color.FgRed, color.Bold)
	sugColor = color.New(color.FgYellow)
)

func main() {
	f := &flags{}
	root := newRootCommand(f)
	if err := root.Execute(); err != nil {
		if we, ok := err.(*wlerr.Error); ok {
			errColor.Fprint(os.Stderr, "Error: ")
			fmt.Fprintln(os.Stderr, we.Error())
			if we.Suggestion != "" {
				sugColor.Fprint(os.Stderr, "suggestion: ")
				fmt.Fprintln(os.Stderr, we.Suggestion)
			}
			os.Exit(int(we.Code))
		}
		errColor.Fprint(os.Stderr, "Error: ")
		fmt.Fprintln(os.Stderr, err)
		os.Exit(int(wlerr.ExitServerFailure))
	}
}

func newRootCommand(f *flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "wlveil [flags] -- <child> [child-args...]",
		Short:        "Transparent Wayland protocol proxy",
		Version:      version,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			childArgs := args
			if dash := cmd.ArgsLenAtDash(); dash >= 0 {
				childArgs = args[dash:]
			}
			if !cmd.Flags().Changed("log-level") {
				f.logLevel = ""
			}
			return run(f, childArgs)
		},
	}

	cmd.Flags().StringVarP(&f.listen, "listen", "l", "", "path to the socket wlveil will listen on (required)")
	cmd.Flags().StringVarP(&f.upstream, "upstream", "u", "", "path to the upstream Wayland server socket (default: $WAYLAND_DISPLAY under $XDG_RUNTIME_DIR)")
	cmd.Flags().StringVarP(&f.config, "config", "c", "", "path to a YAML veil policy file")
	cmd.Flags().StringVar(&f.logLevel, "log-level", "info", "trace|debug|info|warn|error")
	cmd.Flags().StringVar(&f.logPrefix, "log-prefix", "", "string added to every log line as a \"prefix\" field")
	cmd.MarkFlagRequired("listen")

	return cmd
}

func run(f *flags, childArgs []string) error {
	cfg, err := config.Load(f.config)
	if err != nil {
		return wlerr.ConfigError(err)
	}
	if f.logLevel != "" {
		cfg.LogLevel = f.logLevel
	}
	if f.logPrefix != "" {
		cfg.LogPrefix = f.logPrefix
	}
	log := logging.New(os.Stderr, cfg.LogLevel, cfg.LogPrefix)

	upstreamPath, err := resolveUpstream(f.upstream)
	if err != nil {
		return wlerr.ConfigError(err)
	}

	serverEP, err := endpoint.Dial(0, upstreamPath)
	if err != nil {
		return wlerr.ServerError(err)
	}
	defer serverEP.Close()

	listener, err := session.Listen(f.listen)
	if err != nil {
		return wlerr.Wrap(wlerr.ExitConfigError, "failed to listen on proxy socket", err)
	}
	defer listener.Close()

	state := session.NewState(cfg, log, serverEP)
	policy := veil.New(cfg)
	registry := proto.Registry()

	go runServerEventLoop(state, policy, log)
	go acceptLoop(listener, state, policy, registry, log)

	child := exec.Command(childArgs[0], childArgs[1:]...)
	child.Stdin = os.Stdin
	child.Stdout = os.Stdout
	child.Stderr = os.Stderr
	child.Env = append(os.Environ(), "WAYLAND_DISPLAY="+f.listen)

	if err := child.Start(); err != nil {
		return wlerr.SpawnError(err)
	}
	if err := child.Wait(); err != nil {
		if _, ok := err.(*exec.ExitError); !ok {
			return wlerr.SpawnError(err)
		}
	}

	state.Shutdown()
	return nil
}

// resolveUpstream mirrors the real compositor-discovery convention: an
// explicit path wins, otherwise fall back to $WAYLAND_DISPLAY resolved
// under $XDG_RUNTIME_DIR when it isn't already absolute.
func resolveUpstream(path string) (string, error) {
	if path == "" {
		path = os.Getenv("WAYLAND_DISPLAY")
		if path == "" {
			path = "wayland-0"
		}
	}
	if filepath.IsAbs(path) {
		return path, nil
	}
	runDir := os.Getenv("XDG_RUNTIME_DIR")
	if runDir == "" {
		return "", fmt.Errorf("XDG_RUNTIME_DIR not set and upstream path %q is not absolute", path)
	}
	return filepath.Join(runDir, path), nil
}

// acceptLoop accepts every incoming client connection and spawns a
// goroutine draining its requests until the connection closes or hits a
// fatal protocol error.
func acceptLoop(l *net.UnixListener, state *session.State, policy *veil.Policy, registry dispatch.Registry, log zerolog.Logger) {
	for {
		client, err := state.AcceptOne(l)
		if err != nil {
			log.Error().Err(err).Msg("accept failed")
			return
		}
		go clientLoop(client, state, policy, registry, log)
	}
}

// clientLoop drains one client's requests until its connection closes or
// a fatal protocol error forces the session closed.
func clientLoop(client *session.Client, state *session.State, policy *veil.Policy, registry dispatch.Registry, log zerolog.Logger) {
	defer func() {
		state.UnregisterClient(client)
		client.Close()
	}()

	for {
		n, ok, err := client.ClientEndpoint.FillBuffer()
		if err != nil || !ok {
			if err != nil {
				log.Debug().Err(err).Uint64("client", client.ID).Msg("client connection read failed")
			}
			return
		}
		if n == 0 {
			continue
		}

		fatal := false
		for _, derr := range policy.RunClient(client, registry) {
			log.Warn().Err(derr).Uint64("client", client.ID).Msg("client request forwarding error")
			if derr.Kind.Fatal() {
				fatal = true
			}
		}
		for _, err := range state.DrainFlushable() {
			log.Error().Err(err).Msg("flush failed")
		}
		if fatal {
			return
		}
	}
}

func runServerEventLoop(state *session.State, policy *veil.Policy, log zerolog.Logger) {
	for {
		n, ok, err := state.ServerEndpoint.FillBuffer()
		if err != nil || !ok {
			if err != nil {
				log.Error().Err(err).Msg("upstream connection read failed")
			}
			state.Shutdown()
			return
		}
		if n == 0 {
			continue
		}
		for _, derr := range policy.RunServerEvents(state) {
			log.Warn().Err(derr).Msg("server event forwarding error")
		}
		for _, err := range state.DrainFlushable() {
			log.Error().Err(err).Msg("flush failed")
		}
	}
}
