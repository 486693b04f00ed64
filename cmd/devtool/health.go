package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"time"
)

const (
	healthClientTimeout = 5 * time.Second
	slowResponse        = time.Second
)

var probePaths = []string{"/healthz", "/readyz"}

type HealthCheckCommand struct{}

func (c *HealthCheckCommand) Name() string {
	return "health-check"
}

func (c *HealthCheckCommand) Description() string {
	return "Check liveness and readiness of a running server"
}

func (c *HealthCheckCommand) Run(ctx context.Context, out *Printer, args []string) error {
	fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	baseURL := fs.String("url", "http://localhost:8080", "Server base URL")
	if err := fs.Parse(args); err != nil {
		return err
	}

	out.Header(fmt.Sprintf("Health Check (%s)", *baseURL))

	client := &http.Client{Timeout: healthClientTimeout}
	for _, path := range probePaths {
		start := time.Now()
		if err := checkEndpoint(ctx, client, *baseURL+path); err != nil {
			out.Error("%s failed: %v", path, err)
			return err
		}
		if elapsed := time.Since(start); elapsed > slowResponse {
			out.Warning("%s slow response time (%v)", path, elapsed)
		} else {
			out.Success("%s passed (response time: %v)", path, elapsed)
		}
	}
	return nil
}

func checkEndpoint(ctx context.Context, client *http.Client, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status code %d", resp.StatusCode)
	}
	return nil
}
