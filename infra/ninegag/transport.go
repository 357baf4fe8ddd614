package ninegag

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	utls "github.com/refraction-networking/utls"
	"golang.org/x/net/proxy"
)

// TransportOptions configures the HTTP client used against the vendor hosts.
type TransportOptions struct {
	// Fingerprint replaces the Go TLS ClientHello with a randomized browser-like one.
	Fingerprint bool
	// ProxyURL is an optional http(s):// or socks5:// proxy.
	ProxyURL string
	Timeout  time.Duration
}

// NewHTTPClient builds an *http.Client from the transport options.
func NewHTTPClient(opts TransportOptions) (*http.Client, error) {
	base := &net.Dialer{
		Timeout:   30 * time.Second,
		KeepAlive: 30 * time.Second,
	}

	transport := &http.Transport{
		MaxIdleConns:          20,
		MaxIdleConnsPerHost:   4,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		ForceAttemptHTTP2:     !opts.Fingerprint,
		DialContext:           base.DialContext,
	}

	dial := base.DialContext
	if opts.ProxyURL != "" {
		proxyURL, err := url.Parse(opts.ProxyURL)
		if err != nil {
			return nil, fmt.Errorf("parsing proxy URL: %w", err)
		}
		switch strings.ToLower(proxyURL.Scheme) {
		case "http", "https":
			if opts.Fingerprint {
				return nil, fmt.Errorf("TLS fingerprinting requires a socks5 proxy, got %s", proxyURL.Scheme)
			}
			transport.Proxy = http.ProxyURL(proxyURL)
		case "socks5", "socks5h":
			d, err := socksDialer(proxyURL, base)
			if err != nil {
				return nil, err
			}
			dial = d
			transport.DialContext = d
		default:
			return nil, fmt.Errorf("unsupported proxy scheme: %s", proxyURL.Scheme)
		}
	}

	if opts.Fingerprint {
		fd := &fingerprintingDialer{dial: dial, helloID: utls.HelloRandomizedNoALPN}
		transport.DialTLSContext = fd.DialTLSContext
	}

	return &http.Client{Transport: transport, Timeout: opts.Timeout}, nil
}

type dialFunc func(ctx context.Context, network, addr string) (net.Conn, error)

func socksDialer(proxyURL *url.URL, forward *net.Dialer) (dialFunc, error) {
	var auth *proxy.Auth
	if proxyURL.User != nil {
		auth = &proxy.Auth{User: proxyURL.User.Username()}
		if password, ok := proxyURL.User.Password(); ok {
			auth.Password = password
		}
	}
	d, err := proxy.SOCKS5("tcp", proxyURL.Host, auth, forward)
	if err != nil {
		return nil, fmt.Errorf("create SOCKS5 dialer: %w", err)
	}
	if cd, ok := d.(proxy.ContextDialer); ok {
		return cd.DialContext, nil
	}
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		return d.Dial(network, addr)
	}, nil
}

// fingerprintingDialer performs the TLS handshake with utls so the ClientHello
// does not carry the Go fingerprint. ALPN is left out so the connection
// always speaks HTTP/1.1, which is all the transport expects from it.
type fingerprintingDialer struct {
	dial    dialFunc
	helloID utls.ClientHelloID
}

func (d *fingerprintingDialer) DialTLSContext(ctx context.Context, network, addr string) (net.Conn, error) {
	conn, err := d.dial(ctx, network, addr)
	if err != nil {
		return nil, fmt.Errorf("dial: %w", err)
	}

	host := addr
	if h, _, err := net.SplitHostPort(addr); err == nil {
		host = h
	}

	uconn := utls.UClient(conn, &utls.Config{ServerName: host}, d.helloID)
	if err := uconn.Handshake(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("uTLS handshake: %w", err)
	}
	return uconn, nil
}
