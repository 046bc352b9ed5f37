package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/andreasstove999/table-ordering/internal/client"
	"github.com/andreasstove999/table-ordering/internal/waiter"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

// run returns the process exit code so deferred cleanup, such as closing the
// debug log, happens before the process ends.
func run(args []string, stderr io.Writer) int {
	flags := flag.NewFlagSet("waiter", flag.ContinueOnError)
	flags.SetOutput(stderr)
	apiURL := flags.String("api", getenv("WAITER_API_URL", "http://localhost:3333"), "ordering API base url")
	email := flags.String("email", os.Getenv("WAITER_EMAIL"), "login email")
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	timeout := parseDuration(getenv("WAITER_TIMEOUT", "10s"), 10*time.Second)

	logger := log.New(io.Discard, "", 0)
	if path := os.Getenv("WAITER_LOG"); path != "" {
		f, err := tea.LogToFile(path, "waiter")
		if err != nil {
			fmt.Fprintln(stderr, "error:", err)
			return 1
		}
		defer f.Close()
		logger = log.Default()
	}

	api, err := client.New(*apiURL, &http.Client{Timeout: timeout})
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
		logger.Printf("client: %v", err)
		return 1
	}

	if token := os.Getenv("WAITER_TOKEN"); token != "" {
		api.SetToken(token)
	} else {
		if *email == "" {
			fmt.Fprintln(stderr, "error: set WAITER_EMAIL and WAITER_PASSWORD, or WAITER_TOKEN")
			return 2
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		session, err := api.Login(ctx, *email, os.Getenv("WAITER_PASSWORD"))
		cancel()
		if err != nil {
			fmt.Fprintln(stderr, "login failed:", err)
			logger.Printf("login failed for %s: %v", *email, err)
			return 1
		}
		logger.Printf("logged in as %s", session.Email)
	}

	m := waiter.New(api, waiter.Options{
		Timeout:   timeout,
		MaxTable:  envInt("ORDER_MAX_TABLE", 0),
		MaxAmount: envInt("ORDER_MAX_AMOUNT", 0),
		Logger:    logger,
	})

	if _, err := tea.NewProgram(m).Run(); err != nil {
		fmt.Fprintln(stderr, "error:", err)
		logger.Printf("terminal: %v", err)
		return 1
	}
	return 0
}

func getenv(k, def string) string {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	return v
}

func envInt(k string, def int) int {
	v, err := strconv.Atoi(getenv(k, ""))
	if err != nil {
		return def
	}
	return v
}

func parseDuration(v string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return def
	}
	return d
}
