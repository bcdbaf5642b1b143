package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"login-agent/internal/di"
	"login-agent/internal/domain/redact"
	"login-agent/internal/hosts/demo"
	"login-agent/internal/infrastructure/env"
)

func main() {
	envService := env.NewEnvService()

	email := envService.MustGet("LOGIN_EMAIL")
	secret := envService.MustGet("LOGIN_SECRET")
	loginURL := envService.MustGet("LOGIN_URL")
	hostName := envService.Get("LOGIN_HOST")
	if hostName == "" {
		hostName = "demo"
	}

	opts := di.DefaultOptions()
	opts.Headless = envService.GetBool("HEADLESS", true)
	opts.ImplicitWait = envService.GetDuration("IMPLICIT_WAIT", opts.ImplicitWait)
	opts.CaptureOnFailure = envService.GetBool("CAPTURE_ON_FAILURE", false)
	if logPath := envService.Get("LOG_PATH"); logPath != "" {
		opts.LogPath = logPath
	}

	container, err := di.NewContainer(email, secret, opts)
	if err != nil {
		log.Fatalf("init failed: %v", err)
	}
	defer container.Close()

	hook := demo.New(hostName, loginURL)
	if sel := envService.Get("SUCCESS_SELECTOR"); sel != "" {
		hook.SuccessSelector = sel
	}
	if txt := envService.Get("FAILURE_TEXT"); txt != "" {
		hook.FailureText = txt
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	fmt.Printf("Logging into %s as %s...\n", hostName, redact.MaskEmail(email))
	outcome, err := container.Authenticator.AuthenticateAndSetup(ctx, hook)
	if err != nil {
		fmt.Printf("Login failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Login succeeded on %s: %d cookies", outcome.Host, len(outcome.Cookies))
	if outcome.AuthToken != "" {
		fmt.Print(", auth token extracted")
	}
	fmt.Println()
}
