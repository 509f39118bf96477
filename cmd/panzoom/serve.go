package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gorilla/websocket"
	"github.com/phanxgames/panzoom"
	"github.com/spf13/cobra"
)

// liveReloadPath is the websocket endpoint the demo page listens on.
const liveReloadPath = "/__livereload"

func newServeCommand() *cobra.Command {
	var (
		port  int
		host  string
		watch bool
	)

	cmd := &cobra.Command{
		Use:   "serve [dir]",
		Short: "Serve the browser demo",
		Long: `Serves a directory (default "demo") over HTTP. "/" serves index.html and
directories fall back to their index.html. With --watch, connected pages are
told to reload over a websocket at ` + liveReloadPath + ` when a file changes.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "demo"
			if len(args) == 1 {
				root = args[0]
			}
			if env := os.Getenv("PORT"); env != "" && !cmd.Flags().Changed("port") {
				p, err := strconv.Atoi(env)
				if err != nil {
					return fmt.Errorf("invalid PORT %q: %w", env, err)
				}
				port = p
			}
			return runServe(root, host, port, watch)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 8080, "Port to listen on (PORT env var if unset)")
	cmd.Flags().StringVarP(&host, "host", "H", "localhost", "Host to bind to")
	cmd.Flags().BoolVarP(&watch, "watch", "w", true, "Push reloads to connected pages on change")

	return cmd
}

type demoServer struct {
	root     string
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*websocket.Conn]bool
}

func newDemoServer(root string) (*demoServer, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", root)
	}
	return &demoServer{
		root:    abs,
		clients: make(map[*websocket.Conn]bool),
		upgrader: websocket.Upgrader{
			// Local demo only.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}, nil
}

func runServe(root, host string, port int, watch bool) error {
	s, err := newDemoServer(root)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := panzoom.Logger()
	if watch {
		w, err := s.watch(ctx)
		if err != nil {
			return err
		}
		defer w.Close()
	}

	srv := &http.Server{
		Addr:              net.JoinHostPort(host, strconv.Itoa(port)),
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	fmt.Printf("Demo server running at http://%s\n", srv.Addr)
	fmt.Printf("Serving %s (Ctrl+C to stop)\n", s.root)

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}
	log.Info("shutting down")
	s.closeClients()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (s *demoServer) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(liveReloadPath, s.handleLiveReload)
	mux.Handle("/", s)
	return mux
}

// resolve maps a URL path to a file under root. It reports false when the
// path escapes root.
func (s *demoServer) resolve(urlPath string) (string, bool) {
	p := filepath.Join(s.root, filepath.FromSlash(urlPath))
	rel, err := filepath.Rel(s.root, p)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	if strings.HasSuffix(urlPath, "/") {
		p = filepath.Join(p, "index.html")
	}
	return p, true
}

func (s *demoServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	p, ok := s.resolve(r.URL.Path)
	if !ok {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	f, info, err := openServed(p)
	if err != nil {
		msg := "File not found"
		if errors.Is(err, errNoIndex) {
			msg = "Directory index not found"
		}
		s.fail(w, p, err, msg)
		return
	}
	defer f.Close()
	w.Header().Set("Cache-Control", "no-cache")
	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
}

var errNoIndex = fmt.Errorf("directory index: %w", os.ErrNotExist)

// openServed opens p, or p/index.html when p is a directory.
func openServed(p string) (*os.File, os.FileInfo, error) {
	f, err := os.Open(p)
	if err != nil {
		return nil, nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	if !info.IsDir() {
		return f, info, nil
	}
	f.Close()
	f, err = os.Open(filepath.Join(p, "index.html"))
	if err != nil {
		return nil, nil, errNoIndex
	}
	if info, err = f.Stat(); err != nil || info.IsDir() {
		f.Close()
		return nil, nil, errNoIndex
	}
	return f, info, nil
}

func (s *demoServer) fail(w http.ResponseWriter, p string, err error, notFound string) {
	if errors.Is(err, os.ErrNotExist) {
		http.Error(w, notFound, http.StatusNotFound)
		return
	}
	panzoom.Logger().Warn("serve failed", "path", p, "err", err)
	http.Error(w, "Server error", http.StatusInternalServerError)
}

func (s *demoServer) handleLiveReload(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		panzoom.Logger().Warn("websocket upgrade failed", "err", err)
		return
	}
	s.mu.Lock()
	s.clients[conn] = true
	s.mu.Unlock()

	// Read until the page goes away; the client never sends anything useful.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	s.mu.Lock()
	delete(s.clients, conn)
	s.mu.Unlock()
	conn.Close()
}

// broadcast sends msg to every connected page, dropping those that fail.
func (s *demoServer) broadcast(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for conn := range s.clients {
		conn.SetWriteDeadline(time.Now().Add(time.Second))
		if err := conn.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
			conn.Close()
			delete(s.clients, conn)
		}
	}
}

func (s *demoServer) clientCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

func (s *demoServer) closeClients() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for conn := range s.clients {
		conn.Close()
		delete(s.clients, conn)
	}
}

// watch broadcasts "reload" when anything under root changes.
func (s *demoServer) watch(ctx context.Context) (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	err = filepath.WalkDir(s.root, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != s.root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return watcher.Add(p)
		}
		return nil
	})
	if err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", s.root, err)
	}

	log := panzoom.Logger()
	go func() {
		var last time.Time
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if ev.Has(fsnotify.Create) {
					if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
						if err := watcher.Add(ev.Name); err != nil {
							log.Warn("watch failed", "path", ev.Name, "err", err)
						}
					}
				}
				if ev.Has(fsnotify.Chmod) || time.Since(last) < 100*time.Millisecond {
					continue
				}
				last = time.Now()
				log.Debug("reload", "path", ev.Name, "op", ev.Op.String())
				s.broadcast("reload")
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Warn("watcher error", "err", err)
			}
		}
	}()
	return watcher, nil
}
