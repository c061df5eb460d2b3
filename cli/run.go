package cli

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/room4-2/frontdesk/avatar"
	"github.com/room4-2/frontdesk/console"
	"github.com/room4-2/frontdesk/domain"
	"github.com/room4-2/frontdesk/intent"
	"github.com/room4-2/frontdesk/server"
	"github.com/room4-2/frontdesk/session"
)

// Typing a badge id takes longer than a camera frame.
const consoleIdentifyTimeout = 30 * time.Second

func init() {
	RootCmd.AddCommand(&cobra.Command{
		Use:   "run",
		Short: "Serve callers from this terminal",
		Long:  "Runs the receptionist with typed input standing in for the microphone, camera and wake word.",
		Run:   runDesk,
	})
}

func runDesk(cmd *cobra.Command, args []string) {
	cfg := loadConfig()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("\nReceived shutdown signal...")
		cancel()
	}()

	var cl closers
	defer cl.Close()

	redisClient := newRedisClient(cfg)
	if redisClient != nil {
		cl.add(redisClient)
	}

	dir, _, err := openDirectory(ctx, cfg, &cl)
	if err != nil {
		exitErr("directory", err)
	}
	store, err := openAttendance(cfg, redisClient, &cl)
	if err != nil {
		exitErr("attendance", err)
	}
	catalog := loadSite(cfg)

	lines := console.NewLines(os.Stdin)
	voice := &console.Voice{Lines: lines, Out: os.Stdout}

	var presenter domain.Presenter
	switch cfg.Presenter {
	case "websocket":
		hub := server.NewHub(cfg.Port, cfg.AllowedOrigins, cfg.MaxDisplays)
		go func() {
			if err := hub.Start(); err != nil {
				log.Printf("❌ Presenter hub error: %v", err)
			}
		}()
		defer func() {
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer shutdownCancel()
			if err := hub.Shutdown(shutdownCtx); err != nil {
				log.Printf("Presenter hub shutdown error: %v", err)
			}
		}()
		presenter = hub
	default:
		presenter = avatar.NewTerminal(os.Stdout)
	}

	// Once stdin is exhausted give the last question time to be answered.
	go func() {
		select {
		case <-lines.Done():
		case <-ctx.Done():
			return
		}
		select {
		case <-time.After(cfg.ListenTimeout + cfg.RetryTimeout):
			cancel()
		case <-ctx.Done():
		}
	}()

	identifyTimeout := cfg.IdentifyTimeout
	if identifyTimeout < consoleIdentifyTimeout {
		identifyTimeout = consoleIdentifyTimeout
	}

	manager := session.NewManager(session.NewRedisMirror(ctx, redisClient, cfg.IdleTimeout+time.Minute), cfg.HistorySize)
	defer manager.Shutdown(context.Background())

	orch := session.NewOrchestrator(session.Collaborators{
		Wake:         &console.Wake{Lines: lines, Out: os.Stdout, Word: cfg.WakeWord},
		Camera:       &console.BadgeCamera{Lines: lines, Out: os.Stdout},
		Microphone:   console.Device{},
		Faces:        &console.BadgeFaces{Directory: dir},
		Input:        voice,
		Output:       voice,
		Knowledge:    newKnowledge(ctx, cfg, catalog),
		Directory:    dir,
		Attendance:   store,
		Notifier:     newNotifier(cfg),
		Presenter:    presenter,
		Appointments: loadAppointments(cfg),
		Site:         catalog,
	}, session.Options{
		MinConfidence:    cfg.MinFaceConfidence,
		ListenTimeout:    cfg.ListenTimeout,
		RetryTimeout:     cfg.RetryTimeout,
		FollowUpTimeout:  cfg.FollowUpTimeout,
		IdentifyTimeout:  identifyTimeout,
		KnowledgeTimeout: cfg.KnowledgeTimeout,
		DirectoryTimeout: cfg.DirectoryTimeout,
		IdleTimeout:      cfg.IdleTimeout,
	}, intent.Default(), manager)

	log.Printf("🛎️ %s reception is open", catalog.Company.Name)
	if err := orch.Run(ctx); errors.Is(err, domain.ErrResourceUnavailable) {
		log.Printf("❌ %v", err)
		cl.Close()
		os.Exit(1)
	}
	log.Println("Reception closed")
}
