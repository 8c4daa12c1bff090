package bungie

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"sync"
	"time"

	raven "github.com/getsentry/raven-go"
	"github.com/kpango/glg"
)

// Transport performs a single GET request and returns the raw response body. Retries and
// connection handling belong to the Transport, never to the Client.
type Transport interface {
	Fetch(ctx context.Context, url string, headers map[string]string) ([]byte, error)
}

// TransportFunc adapts an ordinary function to the Transport interface.
type TransportFunc func(ctx context.Context, url string, headers map[string]string) ([]byte, error)

// Fetch calls f(ctx, url, headers).
func (f TransportFunc) Fetch(ctx context.Context, url string, headers map[string]string) ([]byte, error) {
	return f(ctx, url, headers)
}

// StatusError is returned by HTTPTransport when Bungie answers with a non 2xx status.
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected HTTP status %d from %s", e.StatusCode, e.URL)
}

// ClientPool is a simple client buffer that will provided round robin access to a collection
// of http.Clients.
type ClientPool struct {
	Clients []*http.Client

	mu      sync.Mutex
	current int
}

// NewClientPool is a convenience initializer to create a new collection of Clients, one per
// local address listed in the file at addressesPath. The default client is used when the file
// is missing or no address could be bound. A nil log logs through glg.
func NewClientPool(addressesPath string, log Logger) *ClientPool {
	if log == nil {
		log = glg.Get()
	}

	addresses := readClientAddresses(addressesPath, log)
	clients := make([]*http.Client, 0, len(addresses))
	for _, addr := range addresses {
		client, err := NewCustomAddrClient(addr)
		if err != nil {
			raven.CaptureError(err, nil)
			log.Warnf("Error creating custom ipv6 client: %s", err.Error())
			continue
		}

		clients = append(clients, client)
	}
	if len(clients) == 0 {
		clients = append(clients, &http.Client{Timeout: 30 * time.Second})
	}

	return &ClientPool{
		Clients: clients,
	}
}

// Get will return a pointer to the next Client that should be used.
func (pool *ClientPool) Get() *http.Client {
	pool.mu.Lock()
	defer pool.mu.Unlock()

	c := pool.Clients[pool.current]
	if pool.current == (len(pool.Clients) - 1) {
		pool.current = 0
	} else {
		pool.current++
	}

	return c
}

func readClientAddresses(path string, log Logger) (result []string) {
	result = make([]string, 0, 32)
	if path == "" {
		return
	}

	in, err := os.Open(path)
	if err != nil {
		log.Warnf("Local clients list %s does not exist, using the default...", path)
		return
	}
	defer in.Close()

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		addr := scanner.Text()
		if addr != "" {
			result = append(result, addr)
		}
	}

	if err = scanner.Err(); err != nil {
		raven.CaptureError(err, nil)
		log.Warnf("Failed to read local clients: %s", err.Error())
	}

	return
}

// NewCustomAddrClient will create a new http.Client bound to the provided local IP address.
func NewCustomAddrClient(address string) (*http.Client, error) {

	localAddr, err := net.ResolveIPAddr("ip6", address)
	if err != nil {
		return nil, err
	}

	localTCPAddr := net.TCPAddr{
		IP: localAddr.IP,
	}

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			LocalAddr: &localTCPAddr,
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
	}

	return &http.Client{Transport: transport, Timeout: 30 * time.Second}, nil
}

// HTTPTransport sends requests through a ClientPool.
type HTTPTransport struct {
	pool *ClientPool
}

// NewHTTPTransport creates a transport using the given pool, or a single default client when
// pool is nil.
func NewHTTPTransport(pool *ClientPool) *HTTPTransport {
	if pool == nil {
		pool = NewClientPool("", nil)
	}

	return &HTTPTransport{pool: pool}
}

// Fetch implements Transport.
func (t *HTTPTransport) Fetch(ctx context.Context, url string, headers map[string]string) ([]byte, error) {

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	for key, val := range headers {
		req.Header.Add(key, val)
	}

	resp, err := t.pool.Get().Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode, URL: url}
	}

	return io.ReadAll(resp.Body)
}
