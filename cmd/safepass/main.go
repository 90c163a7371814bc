// Command safepass is a local vault for TOTP credentials: it stores shared
// secrets, derives the rolling 6-digit codes, and handles otpauth:// URIs,
// QR provisioning images, and JSON backups.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"time"

	"github.com/safepass/safepass/pkg/config"
	"github.com/safepass/safepass/pkg/kv"
	"github.com/safepass/safepass/pkg/logger"
	"github.com/safepass/safepass/pkg/otpauth"
	"github.com/safepass/safepass/pkg/qrcode"
	"github.com/safepass/safepass/pkg/totp"
	"github.com/safepass/safepass/pkg/vault"
)

type appConfig struct {
	StorageBackend string `env:"SAFEPASS_STORAGE" envDefault:"sqlite"` // sqlite, redis or memory
	SQLitePath     string `env:"SAFEPASS_SQLITE_PATH"`                 // defaults to ~/.safepass/vault.db
	EncryptionKey  string `env:"SAFEPASS_ENCRYPTION_KEY"`              // optional base64 32-byte key for secrets at rest
	LogLevel       string `env:"SAFEPASS_LOG_LEVEL" envDefault:"info"`
	LogFormat      string `env:"SAFEPASS_LOG_FORMAT" envDefault:"text"`
}

const usage = `safepass - local TOTP credential vault

Usage:
  safepass <command> [flags]

Commands:
  list                  list stored accounts with their current codes
  add                   store a credential (-uri, or -account/-issuer/-secret)
  remove                delete an account by -id
  code                  show the code for one account (-id, optional -watch)
  export                write a JSON backup (-out, default stdout)
  import                merge a JSON backup (-in), skipping duplicates
  uri                   print the otpauth:// URI for an account (-id)
  qr                    write a provisioning QR PNG for an account (-id, -out)
  secret                generate a fresh shared secret
  keygen                generate a base64 key for SAFEPASS_ENCRYPTION_KEY
  settings              show preferences, or change them (-show-seconds true|false)
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	var cfg appConfig
	if err := config.Load(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "safepass: %v\n", err)
		os.Exit(1)
	}

	log := newLogger(cfg)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, log, os.Args[1], os.Args[2:]); err != nil {
		log.Error("command failed", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg appConfig, log *slog.Logger, command string, args []string) error {
	// Commands that need no storage at all.
	switch command {
	case "secret":
		secret, err := totp.GenerateSecretKey()
		if err != nil {
			return err
		}
		fmt.Println(secret)
		return nil
	case "keygen":
		key, err := vault.GenerateEncryptionKey()
		if err != nil {
			return err
		}
		fmt.Println(key)
		return nil
	case "help", "-h", "--help":
		fmt.Print(usage)
		return nil
	}

	store, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	repo, err := newRepository(store, cfg)
	if err != nil {
		return err
	}
	settings := vault.NewSettingsStore(store)

	switch command {
	case "list":
		return runList(ctx, repo, settings)
	case "add":
		return runAdd(ctx, repo, log, args)
	case "remove":
		return runRemove(ctx, repo, log, args)
	case "code":
		return runCode(ctx, repo, settings, args)
	case "export":
		return runExport(ctx, repo, args)
	case "import":
		return runImport(ctx, repo, log, args)
	case "uri":
		return runURI(ctx, repo, args)
	case "qr":
		return runQR(ctx, repo, args)
	case "settings":
		return runSettings(ctx, settings, args)
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

func newLogger(cfg appConfig) *slog.Logger {
	level := slog.LevelInfo
	_ = level.UnmarshalText([]byte(cfg.LogLevel))

	format := logger.FormatText
	if cfg.LogFormat == string(logger.FormatJSON) {
		format = logger.FormatJSON
	}

	return logger.New(
		logger.WithLevel(level),
		logger.WithFormat(format),
		logger.WithAttr(slog.String("app", "safepass")),
	)
}

func openStore(ctx context.Context, cfg appConfig, log *slog.Logger) (kv.Store, func(), error) {
	switch cfg.StorageBackend {
	case "memory":
		return kv.NewMemoryStore(), func() {}, nil
	case "redis":
		var redisCfg kv.RedisConfig
		if err := config.Load(&redisCfg); err != nil {
			return nil, nil, err
		}
		client, err := kv.ConnectRedis(ctx, redisCfg)
		if err != nil {
			return nil, nil, err
		}
		store := kv.NewRedisStore(client)
		return store, func() { _ = store.Close() }, nil
	case "sqlite":
		path := cfg.SQLitePath
		if path == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, nil, err
			}
			path = filepath.Join(home, ".safepass", "vault.db")
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return nil, nil, err
		}
		store, err := kv.OpenSQLite(ctx, path)
		if err != nil {
			return nil, nil, err
		}
		log.Debug("opened sqlite vault", slog.String("path", path))
		return store, func() { _ = store.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}

func newRepository(store kv.Store, cfg appConfig) (*vault.Repository, error) {
	opts := []vault.RepositoryOption{}
	if cfg.EncryptionKey != "" {
		key, err := vault.DecodeEncryptionKey(cfg.EncryptionKey)
		if err != nil {
			return nil, err
		}
		opts = append(opts, vault.WithEncryptionKey(key))
	}
	return vault.NewRepository(store, opts...)
}

func runList(ctx context.Context, repo *vault.Repository, settings *vault.SettingsStore) error {
	accounts, err := repo.List(ctx)
	if err != nil {
		return err
	}
	if len(accounts) == 0 {
		fmt.Println("no accounts stored")
		return nil
	}
	prefs, err := settings.Load(ctx)
	if err != nil {
		return err
	}

	now := time.Now()
	for _, account := range accounts {
		code, err := totp.Derive(account.Secret, now)
		value := "------" // placeholder for display only; the error case is surfaced by `code`
		if err == nil {
			value = formatCode(code, prefs.ShowSeconds)
		}
		fmt.Printf("%-36s  %-20s  %-24s  %s\n", account.ID, account.Issuer, account.AccountName, value)
	}
	return nil
}

func runAdd(ctx context.Context, repo *vault.Repository, log *slog.Logger, args []string) error {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	uri := fs.String("uri", "", "otpauth:// provisioning URI (e.g. from a QR code)")
	accountName := fs.String("account", "", "account label, e.g. an email address")
	issuer := fs.String("issuer", "", "provider name")
	secret := fs.String("secret", "", "base32 shared secret")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var cred otpauth.Credential
	if *uri != "" {
		parsed, err := otpauth.Parse(*uri)
		if err != nil {
			return err
		}
		cred = parsed
	} else {
		cred = otpauth.Credential{AccountName: *accountName, Issuer: *issuer, Secret: *secret}
	}

	if !totp.ValidateSecret(cred.Secret) {
		return totp.ErrInvalidSecret
	}

	account, err := repo.Add(ctx, cred)
	if err != nil {
		return err
	}
	log.Info("account added", logger.AccountID(account.ID), logger.Issuer(account.Issuer), logger.Secret())
	fmt.Println(account.ID)
	return nil
}

func runRemove(ctx context.Context, repo *vault.Repository, log *slog.Logger, args []string) error {
	fs := flag.NewFlagSet("remove", flag.ExitOnError)
	id := fs.String("id", "", "account id to remove")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return fmt.Errorf("remove: -id is required")
	}

	if err := repo.Remove(ctx, *id); err != nil {
		return err
	}
	log.Info("account removed", logger.AccountID(*id))
	return nil
}

func runCode(ctx context.Context, repo *vault.Repository, settings *vault.SettingsStore, args []string) error {
	fs := flag.NewFlagSet("code", flag.ExitOnError)
	id := fs.String("id", "", "account id")
	watch := fs.Bool("watch", false, "refresh every second until interrupted")
	if err := fs.Parse(args); err != nil {
		return err
	}

	account, err := findAccount(ctx, repo, *id)
	if err != nil {
		return err
	}
	prefs, err := settings.Load(ctx)
	if err != nil {
		return err
	}

	printCode := func(now time.Time) error {
		code, err := totp.Derive(account.Secret, now)
		if err != nil {
			return err
		}
		fmt.Println(formatCode(code, prefs.ShowSeconds))
		return nil
	}

	if err := printCode(time.Now()); err != nil {
		return err
	}
	if !*watch {
		return nil
	}

	// The ticker's lifetime is bounded by ctx: interrupt cancels it and the
	// loop releases the timer on the way out.
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			if err := printCode(now); err != nil {
				return err
			}
		}
	}
}

func runExport(ctx context.Context, repo *vault.Repository, args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	out := fs.String("out", "", "output file (default stdout)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	accounts, err := repo.List(ctx)
	if err != nil {
		return err
	}
	doc, err := vault.Export(accounts)
	if err != nil {
		return err
	}

	if *out == "" {
		fmt.Println(string(doc))
		return nil
	}
	return os.WriteFile(*out, doc, 0o600)
}

func runImport(ctx context.Context, repo *vault.Repository, log *slog.Logger, args []string) error {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	in := fs.String("in", "", "backup file to merge")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" {
		return fmt.Errorf("import: -in is required")
	}

	doc, err := os.ReadFile(*in)
	if err != nil {
		return err
	}

	result, err := repo.ImportMerge(ctx, doc)
	// Report partial progress even when the merge stopped early.
	log.Info("import finished",
		slog.Int("added", len(result.Added)),
		slog.Int("skipped", len(result.Skipped)))
	if err != nil {
		return err
	}
	fmt.Printf("restored %d account(s), skipped %d duplicate(s)\n", len(result.Added), len(result.Skipped))
	return nil
}

func runURI(ctx context.Context, repo *vault.Repository, args []string) error {
	fs := flag.NewFlagSet("uri", flag.ExitOnError)
	id := fs.String("id", "", "account id")
	if err := fs.Parse(args); err != nil {
		return err
	}

	account, err := findAccount(ctx, repo, *id)
	if err != nil {
		return err
	}
	uri, err := otpauth.URI(otpauth.Credential{
		AccountName: account.AccountName,
		Issuer:      account.Issuer,
		Secret:      account.Secret,
	})
	if err != nil {
		return err
	}
	fmt.Println(uri)
	return nil
}

func runQR(ctx context.Context, repo *vault.Repository, args []string) error {
	fs := flag.NewFlagSet("qr", flag.ExitOnError)
	id := fs.String("id", "", "account id")
	out := fs.String("out", "", "output PNG file")
	size := fs.Int("size", 256, "image size in pixels")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *out == "" {
		return fmt.Errorf("qr: -out is required")
	}

	account, err := findAccount(ctx, repo, *id)
	if err != nil {
		return err
	}
	png, err := qrcode.ProvisioningImage(otpauth.Credential{
		AccountName: account.AccountName,
		Issuer:      account.Issuer,
		Secret:      account.Secret,
	}, *size)
	if err != nil {
		return err
	}
	return os.WriteFile(*out, png, 0o600)
}

func runSettings(ctx context.Context, settings *vault.SettingsStore, args []string) error {
	fs := flag.NewFlagSet("settings", flag.ExitOnError)
	showSeconds := fs.String("show-seconds", "", "include remaining window time when printing codes (true or false)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	current, err := settings.Load(ctx)
	if err != nil {
		return err
	}

	if *showSeconds != "" {
		value, err := strconv.ParseBool(*showSeconds)
		if err != nil {
			return fmt.Errorf("settings: -show-seconds must be true or false")
		}
		current.ShowSeconds = value
		if err := settings.Save(ctx, current); err != nil {
			return err
		}
	}

	fmt.Printf("showSeconds: %t\n", current.ShowSeconds)
	return nil
}

// formatCode renders a derived code for terminal output, appending the time
// left in the current window when the showSeconds preference is on.
func formatCode(code totp.Code, showSeconds bool) string {
	if showSeconds {
		return fmt.Sprintf("%s  (%2ds left)", code.Value, int(code.Remaining/time.Second))
	}
	return code.Value
}

func findAccount(ctx context.Context, repo *vault.Repository, id string) (vault.Account, error) {
	if id == "" {
		return vault.Account{}, fmt.Errorf("-id is required")
	}
	accounts, err := repo.List(ctx)
	if err != nil {
		return vault.Account{}, err
	}
	for _, account := range accounts {
		if account.ID == id {
			return account, nil
		}
	}
	return vault.Account{}, fmt.Errorf("no account with id %q", id)
}
