// Dev launcher: starts the backend with `go run` and waits until /health
// answers, then forwards termination signals.
package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"syscall"
	"time"
)

func waitForBackend(baseURL string, timeout time.Duration) bool {
	start := time.Now()
	for {
		if time.Since(start) > timeout {
			return false
		}

		resp, err := http.Get(baseURL + "/health")
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return true
			}
		}

		time.Sleep(500 * time.Millisecond)
	}
}

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}
	baseURL := "http://localhost:" + port

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	fmt.Println("Starting backend...")
	serverCmd := exec.Command("go", "run", "./cmd/server")
	serverCmd.Stdout = os.Stdout
	serverCmd.Stderr = os.Stderr

	if err := serverCmd.Start(); err != nil {
		log.Fatalf("Failed to start backend: %v", err)
	}

	fmt.Println("Waiting for backend to become ready...")
	if !waitForBackend(baseURL, 15*time.Second) {
		serverCmd.Process.Kill()
		log.Fatalf("Timed out waiting for backend startup")
	}
	fmt.Printf("Backend ready at %s\n", baseURL)

	done := make(chan struct{})

	go func() {
		<-sigs
		fmt.Println("\nReceived shutdown signal, stopping backend...")
		if serverCmd.Process != nil {
			serverCmd.Process.Signal(syscall.SIGTERM)
		}
	}()

	go func() {
		if err := serverCmd.Wait(); err != nil {
			fmt.Printf("Backend exited with error: %v\n", err)
		} else {
			fmt.Println("Backend exited cleanly")
		}
		close(done)
	}()

	<-done
}
