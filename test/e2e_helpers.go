//go:build e2e

package test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"sync"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"note-slides/internal/client"
	"note-slides/internal/config"
)

const (
	notesEndpoint = "/api/notes"

	stderrCap    = 64 * 1024
	bootTimeout  = 30 * time.Second
	setupTimeout = 90 * time.Second
)

// Env is a running server plus clients pointed at it.
type Env struct {
	BaseURL string
	HTTP    *http.Client
	API     *client.Client
}

// tailBuffer keeps the first stderrCap bytes of server output and silently
// drops the rest so the child never blocks on a full pipe.
type tailBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *tailBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if room := stderrCap - b.buf.Len(); room > 0 {
		if len(p) > room {
			b.buf.Write(p[:room])
		} else {
			b.buf.Write(p)
		}
	}
	return len(p), nil
}

func (b *tailBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// freePort asks the kernel for an unused TCP port.
func freePort() (int, error) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return 0, err
	}
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port, nil
}

// startMongo runs a throwaway MongoDB container and returns its URI.
// The container is terminated when the test ends.
func startMongo(ctx context.Context, t *testing.T) string {
	t.Helper()
	t.Log("starting mongo container")

	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "mongo:8.0",
			ExposedPorts: []string{"27017/tcp"},
			Env: map[string]string{
				"MONGO_INITDB_ROOT_USERNAME": "root",
				"MONGO_INITDB_ROOT_PASSWORD": "example",
			},
			WaitingFor: wait.ForExec([]string{"mongosh", "--eval", "db.adminCommand('ping')"}).
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Terminate(context.Background()) })

	host, err := c.Host(ctx)
	require.NoError(t, err)
	port, err := c.MappedPort(ctx, "27017")
	require.NoError(t, err)

	return fmt.Sprintf("mongodb://root:example@%s:%s/", host, port.Port())
}

// serverProcess is the server binary (or `go run`) running in its own
// process group.
type serverProcess struct {
	baseURL string
	cmd     *exec.Cmd
	stderr  *tailBuffer
	cancel  context.CancelFunc
}

func launchServer(ctx context.Context, t *testing.T, env map[string]string) *serverProcess {
	t.Helper()

	port, err := freePort()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(ctx)

	var cmd *exec.Cmd
	if bin := os.Getenv("BIN_SERVER"); bin != "" {
		cmd = exec.CommandContext(ctx, bin)
	} else {
		cmd = exec.CommandContext(ctx, "go", "run", "./cmd/server")
		cmd.Dir = "../"
	}
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	vars := os.Environ()
	vars = append(vars,
		"LOG_LEVEL=info",
		"REQUEST_LOGGING_ENABLED=false",
		"APP_PORT="+strconv.Itoa(port),
	)
	for k, v := range env {
		vars = append(vars, k+"="+v)
	}
	cmd.Env = vars

	p := &serverProcess{
		baseURL: fmt.Sprintf("http://127.0.0.1:%d", port),
		cmd:     cmd,
		stderr:  &tailBuffer{},
		cancel:  cancel,
	}
	cmd.Stderr = p.stderr

	t.Logf("launching server on %s", p.baseURL)
	if err := cmd.Start(); err != nil {
		cancel()
		require.NoError(t, err)
	}
	t.Cleanup(func() { p.stop(t) })

	return p
}

// stop kills the whole process group so `go run` children die too.
func (p *serverProcess) stop(t *testing.T) {
	p.cancel()
	if pgid, err := syscall.Getpgid(p.cmd.Process.Pid); err == nil {
		_ = syscall.Kill(-pgid, syscall.SIGKILL)
	}

	done := make(chan struct{})
	go func() {
		_ = p.cmd.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		_ = p.cmd.Process.Kill()
		<-done
	}

	if out := p.stderr.String(); out != "" {
		t.Logf("server stderr (%d bytes):\n%s", len(out), out)
	}
}

func (p *serverProcess) waitHealthy(timeout time.Duration) error {
	hc := &http.Client{Timeout: 2 * time.Second}
	deadline := time.Now().Add(timeout)

	for time.Now().Before(deadline) {
		resp, err := hc.Get(p.baseURL + "/healthz")
		if err == nil {
			ok := resp.StatusCode == http.StatusOK
			resp.Body.Close()
			if ok {
				return nil
			}
		}
		time.Sleep(200 * time.Millisecond)
	}
	return fmt.Errorf("server never became healthy on %s", p.baseURL)
}

// newMongoEnv boots the server against a fresh MongoDB container.
func newMongoEnv(t *testing.T, extra map[string]string) *Env {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), setupTimeout)
	t.Cleanup(cancel)

	env := map[string]string{
		"STORAGE_DRIVER": config.StorageMongo,
		"MONGO_URI":      startMongo(ctx, t),
		"MONGO_DB_NAME":  "e2e",
	}
	for k, v := range extra {
		env[k] = v
	}
	return boot(ctx, t, env)
}

// newSQLiteEnv boots the server against a SQLite file in a temp dir.
func newSQLiteEnv(t *testing.T, extra map[string]string) *Env {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), setupTimeout)
	t.Cleanup(cancel)

	env := map[string]string{
		"STORAGE_DRIVER": config.StorageSQLite,
		"SQLITE_PATH":    filepath.Join(t.TempDir(), "e2e.db"),
	}
	for k, v := range extra {
		env[k] = v
	}
	return boot(ctx, t, env)
}

func boot(ctx context.Context, t *testing.T, env map[string]string) *Env {
	t.Helper()

	p := launchServer(ctx, t, env)
	require.NoError(t, p.waitHealthy(bootTimeout), "stderr:\n%s", p.stderr.String())

	api, err := client.New(p.baseURL)
	require.NoError(t, err)

	return &Env{
		BaseURL: p.baseURL,
		HTTP:    &http.Client{Timeout: 5 * time.Second},
		API:     api,
	}
}

// doJSON sends payload (when non-nil) as a JSON body.
func doJSON(hc *http.Client, method, url string, payload any) (*http.Response, error) {
	var body bytes.Buffer
	if payload != nil {
		if err := json.NewEncoder(&body).Encode(payload); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequest(method, url, &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return hc.Do(req)
}

// postNote creates a note and returns only the status code.
func postNote(t *testing.T, env *Env, body any) int {
	t.Helper()
	resp, err := doJSON(env.HTTP, http.MethodPost, env.BaseURL+notesEndpoint, body)
	require.NoError(t, err)
	defer resp.Body.Close()
	return resp.StatusCode
}
