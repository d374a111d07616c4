package main

import (
	"bytes"
	"flag"
	"os"
	"path/filepath"
	"testing"
)

// resetFlags resets the global flag.CommandLine to avoid "flag redefined" panic
func resetFlags() {
	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ExitOnError)
}

// resetEnv clears env vars used by parseConfig
func resetEnv() {
	os.Clearenv()
}

func TestParseFlags_Default(t *testing.T) {
	resetFlags()
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()

	os.Args = []string{"cmd"}
	configPath, serve := parseFlags()

	if configPath != "config.env" {
		t.Errorf("expected config.env, got %s", configPath)
	}
	if serve {
		t.Errorf("expected serve to default to false")
	}
}

func TestParseFlags_Custom(t *testing.T) {
	resetFlags()
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()

	os.Args = []string{"cmd", "-c", "myconfig.env", "-serve"}
	configPath, serve := parseFlags()

	if configPath != "myconfig.env" {
		t.Errorf("expected myconfig.env, got %s", configPath)
	}
	if !serve {
		t.Errorf("expected serve to be true")
	}
}

func TestPrintBuildInfo_Output(t *testing.T) {
	// Capture stdout
	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	buildVersion = "v1.0.0"
	buildCommit = "abcd1234"
	buildDate = "2026-08-01"

	printBuildInfo()

	w.Close()
	var buf bytes.Buffer
	_, _ = buf.ReadFrom(r)
	output := buf.String()
	os.Stdout = oldStdout

	if !bytes.Contains([]byte(output), []byte("v1.0.0")) ||
		!bytes.Contains([]byte(output), []byte("abcd1234")) ||
		!bytes.Contains([]byte(output), []byte("2026-08-01")) {
		t.Errorf("printBuildInfo output unexpected:\n%s", output)
	}
}

func TestParseConfig_MissingAPIKeyFailsFast(t *testing.T) {
	resetEnv()

	_, _, _, _, _, _, _, _, _, _, err := parseConfig("nonexistent.env")
	if err == nil {
		t.Fatal("expected error when OMDB_API_KEY is missing")
	}
}

func TestParseConfig_Defaults(t *testing.T) {
	resetEnv()
	os.Setenv("OMDB_API_KEY", "test-key")

	dbPath, siteDir, templatePath,
		omdbURL, omdbAPIKey, omdbTimeoutSecs,
		appHost, appPort, logLevel, logPath, err := parseConfig("nonexistent.env")

	if err != nil {
		t.Fatalf("parseConfig returned error: %v", err)
	}

	if dbPath != filepath.Join("data", "movies.db") || siteDir != "_static" || templatePath != "" {
		t.Errorf("unexpected storage config: %v/%v/%v", dbPath, siteDir, templatePath)
	}
	if omdbURL != "https://www.omdbapi.com/" || omdbAPIKey != "test-key" || omdbTimeoutSecs != 10 {
		t.Errorf("unexpected OMDb config: %v/%v/%v", omdbURL, omdbAPIKey, omdbTimeoutSecs)
	}
	if appHost != "localhost" || appPort != "8080" {
		t.Errorf("unexpected app config: %v/%v", appHost, appPort)
	}
	if logLevel != "info" || logPath != "movieshelf.log" {
		t.Errorf("unexpected logging config: %v/%v", logLevel, logPath)
	}
}

func TestParseConfig_EnvFile(t *testing.T) {
	resetEnv()

	dir := t.TempDir()
	envFile := filepath.Join(dir, "config.env")
	content := "OMDB_API_KEY=file-key\nMOVIESHELF_DB_PATH=" + filepath.Join(dir, "movies.db") + "\nOMDB_TIMEOUT_SECONDS=3\n"
	if err := os.WriteFile(envFile, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	dbPath, _, _, _, omdbAPIKey, omdbTimeoutSecs, _, _, _, _, err := parseConfig(envFile)
	if err != nil {
		t.Fatalf("parseConfig returned error: %v", err)
	}

	if omdbAPIKey != "file-key" {
		t.Errorf("expected API key from env file, got %s", omdbAPIKey)
	}
	if omdbTimeoutSecs != 3 {
		t.Errorf("expected timeout 3, got %d", omdbTimeoutSecs)
	}
	if dbPath != filepath.Join(dir, "movies.db") {
		t.Errorf("unexpected db path: %s", dbPath)
	}
}

func TestParseConfig_BadTimeout(t *testing.T) {
	resetEnv()
	os.Setenv("OMDB_API_KEY", "test-key")
	os.Setenv("OMDB_TIMEOUT_SECONDS", "not-a-number")

	_, _, _, _, _, _, _, _, _, _, err := parseConfig("nonexistent.env")
	if err == nil {
		t.Fatal("expected error for non-numeric timeout")
	}
}
