package main

import (
	"fmt"
	"os"
	"os/exec"
)

func main() {
	fmt.Println("Setting up Club Ticketing Development Environment")

	if err := checkDocker(); err != nil {
		fmt.Printf("Docker issue detected: %v\n", err)
		fmt.Println("You can still run against an existing MySQL with KAFKA_MOCK_MODE=true")
		return
	}

	fmt.Println("Docker is running")
	fmt.Println("Starting MySQL and Kafka services...")

	cmd := exec.Command("docker-compose", "up", "-d", "db", "kafka")
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		fmt.Printf("Failed to start services: %v\n", err)
		return
	}

	fmt.Println("Services started")
	fmt.Println("Run the migration next: go run ./cmd/migrate")
}

func checkDocker() error {
	cmd := exec.Command("docker", "info")
	cmd.Stdout = nil
	cmd.Stderr = nil
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("docker daemon not reachable")
	}
	return nil
}
