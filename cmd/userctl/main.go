// userctl is a small command-line client for the user service. It keeps the
// signed-in user's public profile in a local session database, the same way
// the web client caches it in local storage.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/codeOfTheFuture/mern-stack-authentication/internal/client/api"
	"github.com/codeOfTheFuture/mern-stack-authentication/internal/client/session"
	"golang.org/x/term"
)

func main() {
	serverURL := flag.String("server", "http://localhost:5000", "base URL of the user service")
	sessionPath := flag.String("session", defaultSessionPath(), "path to the local session database")
	flag.Parse()

	if flag.NArg() < 1 {
		usage()
		os.Exit(2)
	}

	if err := run(flag.Arg(0), *serverURL, *sessionPath); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(command, serverURL, sessionPath string) error {
	ctx := context.Background()

	if err := os.MkdirAll(filepath.Dir(sessionPath), 0o700); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}

	store, err := session.Open(ctx, sessionPath)
	if err != nil {
		return err
	}
	defer store.Close()

	client, err := api.New(serverURL)
	if err != nil {
		return err
	}

	switch command {
	case "register":
		return register(ctx, client, store)
	case "login":
		return login(ctx, client, store)
	case "logout":
		return logout(ctx, client, store)
	case "whoami":
		return whoami(ctx, store)
	case "profile":
		return profile(ctx, client)
	case "update":
		return update(ctx, client, store)
	default:
		usage()
		return fmt.Errorf("unknown command %q", command)
	}
}

func register(ctx context.Context, client *api.Client, store session.Store) error {
	name := prompt("Name: ")
	email := prompt("Email: ")
	password, err := promptPassword("Password: ")
	if err != nil {
		return err
	}

	p, err := client.Register(ctx, name, email, password)
	if err != nil {
		return err
	}

	if err := store.SetCredentials(ctx, session.UserInfo{ID: p.ID, Name: p.Name, Email: p.Email}); err != nil {
		return err
	}

	fmt.Printf("registered and signed in as %s <%s>\n", p.Name, p.Email)
	return nil
}

func login(ctx context.Context, client *api.Client, store session.Store) error {
	email := prompt("Email: ")
	password, err := promptPassword("Password: ")
	if err != nil {
		return err
	}

	p, err := client.Login(ctx, email, password)
	if err != nil {
		return err
	}

	if err := store.SetCredentials(ctx, session.UserInfo{ID: p.ID, Name: p.Name, Email: p.Email}); err != nil {
		return err
	}

	fmt.Printf("signed in as %s <%s>\n", p.Name, p.Email)
	return nil
}

func logout(ctx context.Context, client *api.Client, store session.Store) error {
	if err := client.Logout(ctx); err != nil {
		return err
	}

	if err := store.ClearCredentials(ctx); err != nil {
		return err
	}

	fmt.Println("signed out")
	return nil
}

func whoami(ctx context.Context, store session.Store) error {
	info, err := store.Current(ctx)
	if err != nil {
		return err
	}
	if info == nil {
		fmt.Println("not signed in")
		return nil
	}

	fmt.Printf("%s <%s> (%s)\n", info.Name, info.Email, info.ID)
	return nil
}

func profile(ctx context.Context, client *api.Client) error {
	p, err := client.Profile(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("id:      %s\nname:    %s\nemail:   %s\ncreated: %s\nupdated: %s\n",
		p.ID, p.Name, p.Email, p.CreatedAt, p.UpdatedAt)
	return nil
}

func update(ctx context.Context, client *api.Client, store session.Store) error {
	fmt.Println("leave a field empty to keep its current value")
	params := api.UpdateParams{
		Name:  prompt("New name: "),
		Email: prompt("New email: "),
	}
	password, err := promptPassword("New password: ")
	if err != nil {
		return err
	}
	params.Password = password

	p, err := client.UpdateProfile(ctx, params)
	if err != nil {
		return err
	}

	if err := store.SetCredentials(ctx, session.UserInfo{ID: p.ID, Name: p.Name, Email: p.Email}); err != nil {
		return err
	}

	fmt.Printf("profile updated: %s <%s>\n", p.Name, p.Email)
	return nil
}

func prompt(label string) string {
	fmt.Print(label)
	reader := bufio.NewReader(os.Stdin)
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}

func promptPassword(label string) (string, error) {
	fmt.Print(label)
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return strings.TrimSpace(string(raw)), nil
}

func defaultSessionPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "userctl-session.db"
	}
	return filepath.Join(home, ".userctl", "session.db")
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: userctl [-server URL] [-session PATH] <command>

commands:
  register   create an account and sign in
  login      sign in with email and password
  logout     sign out and clear the cached profile
  whoami     print the locally cached profile
  profile    fetch the profile from the server
  update     change name, email or password`)
}
