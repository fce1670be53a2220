package network

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"inputhook/internal/protocol"
)

const probeHTTPTimeout = 500 * time.Millisecond

// DiscoveredHost represents an inputhook API server found on the network
type DiscoveredHost struct {
	IP      string `json:"ip"`
	Port    int    `json:"port"`
	Version string `json:"version,omitempty"`
	Backend string `json:"backend,omitempty"`
	Enabled bool   `json:"enabled"`
}

// GetLocalIP returns the primary local IP address
func GetLocalIP() (string, error) {
	conn, err := net.Dial("udp", "8.8.8.8:80")
	if err != nil {
		return "", err
	}
	defer conn.Close()

	localAddr := conn.LocalAddr().(*net.UDPAddr)
	return localAddr.IP.String(), nil
}

// ScanLAN probes every address of the local /24 for an API server on port.
func ScanLAN(ctx context.Context, port int) ([]DiscoveredHost, error) {
	localIP, err := GetLocalIP()
	if err != nil {
		return nil, fmt.Errorf("failed to get local IP: %w", err)
	}

	parts := strings.Split(localIP, ".")
	if len(parts) != 4 {
		return nil, fmt.Errorf("invalid IP address format: %s", localIP)
	}
	subnet := strings.Join(parts[:3], ".")

	client := &http.Client{Timeout: probeHTTPTimeout}

	var hosts []DiscoveredHost
	var mu sync.Mutex
	var wg sync.WaitGroup

	for i := 1; i <= 254; i++ {
		ip := fmt.Sprintf("%s.%d", subnet, i)
		if ip == localIP {
			continue
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			if host, ok := probeHost(ctx, client, ip, port); ok {
				mu.Lock()
				hosts = append(hosts, host)
				mu.Unlock()
			}
		}()
	}

	wg.Wait()
	return hosts, ctx.Err()
}

// probeHost checks /health and then reads /api/status. A server that
// requires a token still counts as found.
func probeHost(ctx context.Context, client *http.Client, ip string, port int) (DiscoveredHost, bool) {
	ctx, cancel := context.WithTimeout(ctx, probeHTTPTimeout)
	defer cancel()

	host := DiscoveredHost{IP: ip, Port: port}
	base := fmt.Sprintf("http://%s", net.JoinHostPort(ip, fmt.Sprint(port)))

	resp, err := get(ctx, client, base+"/health")
	if err != nil {
		return host, false
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return host, false
	}

	resp, err = get(ctx, client, base+"/api/status")
	if err != nil {
		return host, true
	}
	defer resp.Body.Close()

	var status protocol.StatusPayload
	if resp.StatusCode == http.StatusOK && json.NewDecoder(resp.Body).Decode(&status) == nil {
		host.Version = status.Version
		host.Backend = status.Backend
		host.Enabled = status.Enabled
	}
	return host, true
}

func get(ctx context.Context, client *http.Client, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	return client.Do(req)
}

// GetLocalIPs returns all available local IPv4 addresses
func GetLocalIPs() ([]string, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, err
	}
	var ips []string
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 {
			continue // interface down
		}
		if iface.Flags&net.FlagLoopback != 0 {
			continue // loopback interface
		}
		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}
		for _, addr := range addrs {
			var ip net.IP
			switch v := addr.(type) {
			case *net.IPNet:
				ip = v.IP
			case *net.IPAddr:
				ip = v.IP
			}
			if ip == nil || ip.IsLoopback() {
				continue
			}
			ip = ip.To4()
			if ip == nil {
				continue // not an ipv4 address
			}
			ips = append(ips, ip.String())
		}
	}
	return ips, nil
}
