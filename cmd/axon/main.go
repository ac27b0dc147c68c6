package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/jeanpaul/axon/internal/agent"
	"github.com/jeanpaul/axon/internal/config"
	"github.com/jeanpaul/axon/internal/headless"
	"github.com/jeanpaul/axon/internal/health"
	"github.com/jeanpaul/axon/internal/search"
	"github.com/jeanpaul/axon/internal/storage"
	"github.com/jeanpaul/axon/internal/tui"
	"github.com/jeanpaul/axon/pkg/version"
)

func main() {
	_ = godotenv.Load()

	promptFlag := flag.String("p", "", "Répond une seule fois puis quitte (mode script)")
	storageFlag := flag.String("storage", "", "Racine de stockage (remplace la configuration)")
	providerFlag := flag.String("provider", "", "Fournisseur de recherche (mock, duckduckgo)")
	versionFlag := flag.Bool("version", false, "Affiche la version")
	helpFlag := flag.Bool("help", false, "Affiche l'aide")
	flag.BoolVar(helpFlag, "h", false, "Affiche l'aide")

	flag.Usage = showHelp
	flag.Parse()

	if *helpFlag {
		showHelp()
		os.Exit(0)
	}

	if *versionFlag {
		fmt.Printf("axon %s (%s)\n", version.Version, version.Commit)
		os.Exit(0)
	}

	cfg, err := config.Load()
	if err != nil {
		fatal("configuration : %s", err)
	}
	if *storageFlag != "" {
		cfg.Storage.Root = *storageFlag
	}
	if *providerFlag != "" {
		cfg.Search.Provider = *providerFlag
	}
	// Flag overrides bypass Load's validation, so check again.
	if err := cfg.Validate(); err != nil {
		fatal("configuration : %s", err)
	}

	args := flag.Args()
	if len(args) > 0 {
		switch args[0] {
		case "memory":
			cmdMemory(cfg)
			return
		case "axioms":
			cmdAxioms(cfg)
			return
		case "logs":
			fs := flag.NewFlagSet("logs", flag.ExitOnError)
			count := fs.Int("n", 5, "Nombre d'entrées à afficher")
			_ = fs.Parse(args[1:])
			cmdLogs(cfg, *count)
			return
		case "doctor":
			cmdDoctor(cfg)
			return
		case "remember":
			if len(args) < 3 {
				fatal("usage : axon remember <sujet> <valeur...>")
			}
			cmdRemember(cfg, args[1], strings.Join(args[2:], " "))
			return
		case "forget":
			if len(args) < 2 {
				fatal("usage : axon forget <requête>")
			}
			cmdForget(cfg, strings.Join(args[1:], " "))
			return
		case "config":
			sub := ""
			if len(args) > 1 {
				sub = args[1]
			}
			cmdConfig(cfg, sub)
			return
		case "version":
			fmt.Printf("axon %s (%s)\n", version.Version, version.Commit)
			return
		case "help":
			showHelp()
			return
		default:
			// Trailing words are a prompt: `axon cherche la météo`
			// behaves like `axon -p "cherche la météo"`.
			*promptFlag = strings.Join(args, " ")
		}
	}

	if *promptFlag != "" {
		launchHeadless(cfg, *promptFlag)
		return
	}
	launchTUI(cfg)
}

// newLogger builds the process logger from configuration. The TUI path
// never uses it: bubbletea owns the terminal there.
func newLogger(cfg config.LogConfig) (*zap.Logger, error) {
	if cfg.Development {
		return zap.NewDevelopment()
	}
	zc := zap.NewProductionConfig()
	level, err := zap.ParseAtomicLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("log level %q: %w", cfg.Level, err)
	}
	zc.Level = level
	return zc.Build()
}

func makeProvider(cfg *config.Config, logger *zap.Logger) search.Provider {
	if cfg.Search.Provider == "duckduckgo" {
		return search.NewDuckDuckGo(cfg.Search.MaxResults, cfg.Search.FetchSummaries, logger)
	}
	return search.Offline{}
}

func newAgent(cfg *config.Config, logger *zap.Logger) (*agent.Agent, error) {
	store := storage.New(cfg.Storage.Root, logger)
	return agent.New(store, makeProvider(cfg, logger), logger)
}

func launchHeadless(cfg *config.Config, prompt string) {
	logger, err := newLogger(cfg.Log)
	if err != nil {
		fatal("journalisation : %s", err)
	}
	defer func() { _ = logger.Sync() }()

	agt, err := newAgent(cfg, logger)
	if err != nil {
		fatal("%s", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := headless.Run(ctx, agt, prompt, os.Stdout); err != nil {
		fatal("%s", err)
	}
}

func launchTUI(cfg *config.Config) {
	agt, err := newAgent(cfg, zap.NewNop())
	if err != nil {
		fatal("%s", err)
	}

	var opts []tea.ProgramOption
	if isTerminal() {
		opts = append(opts, tea.WithAltScreen())
	}

	p := tea.NewProgram(tui.NewModel(agt), opts...)
	if _, err := p.Run(); err != nil {
		fatal("interface : %s", err)
	}
}

func cmdMemory(cfg *config.Config) {
	agt, err := newAgent(cfg, zap.NewNop())
	if err != nil {
		fatal("%s", err)
	}
	data, err := json.MarshalIndent(agt.ShowMemory(), "", "  ")
	if err != nil {
		fatal("mémoire : %s", err)
	}
	fmt.Println(string(data))
}

func cmdAxioms(cfg *config.Config) {
	agt, err := newAgent(cfg, zap.NewNop())
	if err != nil {
		fatal("%s", err)
	}
	text := agt.Axioms()
	if strings.TrimSpace(text) == "" {
		fmt.Println(tui.HelpStyle.Render("Aucun axiome défini. Fichier : " + agt.Store().AxiomsPath()))
		return
	}
	if r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100)); err == nil {
		if out, rerr := r.Render(text); rerr == nil {
			fmt.Print(out)
			return
		}
	}
	fmt.Println(text)
}

func cmdLogs(cfg *config.Config, count int) {
	agt, err := newAgent(cfg, zap.NewNop())
	if err != nil {
		fatal("%s", err)
	}
	entries, err := agt.Store().TailLogs(count)
	if err != nil {
		fatal("journal : %s", err)
	}
	if len(entries) == 0 {
		fmt.Println(tui.HelpStyle.Render("Journal vide."))
		return
	}

	fmt.Println(tui.BannerStyle.Render("  Journal des interactions"))
	fmt.Println()
	for _, e := range entries {
		action := ""
		if len(e.Actions) > 0 {
			action = e.Actions[0]
		}
		fmt.Printf("  %s  %s  %s\n",
			tui.StatusStyle.Render(e.Timestamp.Local().Format("02/01 15:04:05")),
			tui.UserLabelStyle.Render("["+action+"]"),
			e.Prompt,
		)
		for _, line := range e.Response {
			fmt.Printf("      %s\n", tui.HelpStyle.Render("→ "+line))
		}
	}
}

// cmdDoctor inspects the storage files without seeding them, so a
// missing file is reported instead of silently created.
func cmdDoctor(cfg *config.Config) {
	store := storage.New(cfg.Storage.Root, zap.NewNop())

	fmt.Println(tui.BannerStyle.Render("  État du stockage"))
	fmt.Println()
	fmt.Printf("  %s\n\n", tui.StatusStyle.Render("racine : "+store.Root()))

	statuses := health.Check(store)
	for _, s := range statuses {
		fmt.Printf("  %s %s ... ",
			tui.SpinnerStyle.Render("●"),
			tui.UserLabelStyle.Render(s.Name),
		)
		if s.OK {
			fmt.Printf("%s %s\n", tui.BannerStyle.Render("✓"), tui.HelpStyle.Render(s.Detail))
		} else {
			fmt.Printf("%s\n", tui.ErrorStyle.Render("✗ "+s.Error))
		}
	}

	fmt.Println()
	if !health.Healthy(statuses) {
		fmt.Println(tui.ErrorStyle.Render("  Des anomalies ont été détectées."))
		fmt.Println(tui.HelpStyle.Render("  Lancez l'agent une fois pour initialiser les fichiers manquants."))
		os.Exit(1)
	}
	fmt.Println(tui.BannerStyle.Render("  Stockage sain."))
}

func cmdRemember(cfg *config.Config, subject, value string) {
	logger, err := newLogger(cfg.Log)
	if err != nil {
		fatal("journalisation : %s", err)
	}
	defer func() { _ = logger.Sync() }()

	agt, err := newAgent(cfg, logger)
	if err != nil {
		fatal("%s", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	reply, err := agt.RememberFact(ctx, subject, value)
	if err != nil {
		fatal("%s", err)
	}
	fmt.Println(reply)
}

func cmdForget(cfg *config.Config, query string) {
	logger, err := newLogger(cfg.Log)
	if err != nil {
		fatal("journalisation : %s", err)
	}
	defer func() { _ = logger.Sync() }()

	agt, err := newAgent(cfg, logger)
	if err != nil {
		fatal("%s", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	reply, err := agt.ForgetFacts(ctx, query)
	if err != nil {
		fatal("%s", err)
	}
	fmt.Println(reply)
}

func cmdConfig(cfg *config.Config, sub string) {
	switch sub {
	case "init":
		path := config.Path()
		if err := config.WriteDefault(path); err != nil {
			fatal("%s", err)
		}
		fmt.Println(tui.BannerStyle.Render("  ✓ Configuration écrite : " + path))
	case "show":
		data, err := yaml.Marshal(cfg)
		if err != nil {
			fatal("configuration : %s", err)
		}
		fmt.Printf("# %s\n%s", config.Path(), data)
	default:
		fatal("usage : axon config <init|show>")
	}
}

// isTerminal checks if stdin is a terminal
func isTerminal() bool {
	fi, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}

func fatal(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(os.Stderr, tui.ErrorStyle.Render("erreur : "+msg))
	os.Exit(1)
}

func showHelp() {
	help := `
` + tui.BannerStyle.Render("Axon") + ` — agent personnel à mémoire locale

` + tui.UserLabelStyle.Render("UTILISATION :") + `
  axon [options]              Démarre la discussion interactive
  axon -p "<message>"         Répond une seule fois puis quitte
  axon <commande> [args]      Exécute une commande

` + tui.UserLabelStyle.Render("COMMANDES :") + `
  memory                      Affiche la mémoire complète (JSON)
  axioms                      Affiche les axiomes (Markdown rendu)
  logs [-n N]                 Affiche les N dernières interactions
  doctor                      Vérifie l'état des fichiers de stockage
  remember <sujet> <valeur>   Mémorise un fait directement
  forget <requête>            Oublie les faits correspondants
  config init                 Écrit la configuration par défaut
  config show                 Affiche la configuration effective
  version                     Affiche la version
  help                        Affiche cette aide

` + tui.UserLabelStyle.Render("OPTIONS :") + `
  -p "<message>"              Mode script : répond sur stdout et quitte
  --storage <dossier>         Racine de stockage (défaut ~/.axon)
  --provider <nom>            Fournisseur de recherche (mock, duckduckgo)
  --version                   Affiche la version
  --help, -h                  Affiche cette aide

` + tui.UserLabelStyle.Render("EXEMPLES :") + `
  axon                                        Discussion interactive
  axon -p "apprends que le ciel est bleu"     Mémorise un fait
  axon -p "qu'est-ce que le ciel ?"           Interroge la mémoire
  axon --provider duckduckgo -p "cherche go"  Recherche en ligne
  axon logs -n 10                             Dernières interactions

` + tui.UserLabelStyle.Render("COMMANDES DU CHAT :") + `
  /help /memory /axioms /logs /doctor /clear /quit

` + tui.HelpStyle.Render("Configuration : "+config.Path()) + `
`
	fmt.Println(help)
}
