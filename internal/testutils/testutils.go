//go:build integration

// Package testutils provides shared test infrastructure for integration tests.
package testutils

import (
	"bytes"
	"context"
	"crypto/rand"
	"fmt"
	"testing"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestFile defines a test file with size and data.
type TestFile struct {
	Name string
	Size int64
	Data []byte
}

// GenerateTestData generates test data of the given size.
// For files <= 10MB, uses deterministic pattern. For larger files, uses random data.
func GenerateTestData(t *testing.T, size int64) []byte {
	t.Helper()
	data := make([]byte, size)
	if size <= 10*1024*1024 {
		for i := range data {
			data[i] = byte(i % 256)
		}
	} else {
		if _, err := rand.Read(data); err != nil {
			t.Fatalf("generate random data: %v", err)
		}
	}
	return data
}

// OriginEnv contains connection information for a containerized HTTP
// origin serving the test files.
type OriginEnv struct {
	Container testcontainers.Container
	BaseURL   string
}

// Close terminates the origin container.
func (e *OriginEnv) Close(ctx context.Context) error {
	if e.Container != nil {
		return e.Container.Terminate(ctx)
	}
	return nil
}

// URL returns the origin URL for a test file.
func (e *OriginEnv) URL(name string) string {
	return e.BaseURL + "/" + name
}

// StartOriginContainer starts an nginx container serving the given
// files. nginx honors Range requests and reports Content-Length out of
// the box, which is exactly the server behavior the fetcher assumes.
func StartOriginContainer(t *testing.T, ctx context.Context, files []TestFile) *OriginEnv {
	t.Helper()

	var containerFiles []testcontainers.ContainerFile
	for _, f := range files {
		containerFiles = append(containerFiles, testcontainers.ContainerFile{
			Reader:            bytes.NewReader(f.Data),
			ContainerFilePath: "/usr/share/nginx/html/" + f.Name,
			FileMode:          0644,
		})
	}

	req := testcontainers.ContainerRequest{
		Image:        "nginx:1.27-alpine",
		ExposedPorts: []string{"80/tcp"},
		Files:        containerFiles,
		WaitingFor:   wait.ForHTTP("/").WithPort("80/tcp"),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatalf("start nginx container: %v", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("get container host: %v", err)
	}
	port, err := container.MappedPort(ctx, "80")
	if err != nil {
		t.Fatalf("get container port: %v", err)
	}

	return &OriginEnv{
		Container: container,
		BaseURL:   fmt.Sprintf("http://%s:%s", host, port.Port()),
	}
}
