package cli

import (
	"context"
	"io"
	"log"

	"github.com/redis/go-redis/v9"

	"github.com/room4-2/frontdesk/attendance"
	"github.com/room4-2/frontdesk/calendar"
	"github.com/room4-2/frontdesk/config"
	"github.com/room4-2/frontdesk/directory"
	"github.com/room4-2/frontdesk/domain"
	"github.com/room4-2/frontdesk/gemini"
	"github.com/room4-2/frontdesk/notify"
	"github.com/room4-2/frontdesk/site"
)

// closers releases resources in reverse order of opening.
type closers []io.Closer

func (c *closers) add(x io.Closer) { *c = append(*c, x) }

func (c closers) Close() error {
	for i := len(c) - 1; i >= 0; i-- {
		if err := c[i].Close(); err != nil {
			log.Printf("⚠️ Close failed: %v", err)
		}
	}
	return nil
}

func newRedisClient(cfg *config.Config) *redis.Client {
	if cfg.RedisURL == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     cfg.RedisURL,
		Password: cfg.RedisPassword,
	})
}

// openDirectory builds the Postgres → SQLite failover chain. A Postgres
// that cannot be reached at startup is skipped.
func openDirectory(ctx context.Context, cfg *config.Config, cl *closers) (*directory.Failover, *directory.Store, error) {
	secondary, err := directory.OpenSQLite(ctx, cfg.SQLitePath)
	if err != nil {
		return nil, nil, err
	}
	cl.add(secondary)

	f := &directory.Failover{Secondary: secondary, Timeout: cfg.DirectoryTimeout}
	if cfg.DatabaseURL != "" {
		primary, err := directory.OpenPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Printf("⚠️ Primary directory unavailable, using SQLite only: %v", err)
		} else {
			cl.add(primary)
			f.Primary = primary
		}
	}
	return f, secondary, nil
}

func openAttendance(cfg *config.Config, client *redis.Client, cl *closers) (domain.AttendanceStore, error) {
	var store domain.AttendanceStore
	switch cfg.AttendanceBackend {
	case "memory":
		store = attendance.NewMemory()
	case "redis":
		store = attendance.NewRedis(client)
	default:
		s, err := attendance.NewSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		cl.add(s)
		store = s
	}
	log.Printf("🗂️ Attendance backend: %s", cfg.AttendanceBackend)
	return attendance.NewSerialized(store), nil
}

func newNotifier(cfg *config.Config) *notify.Dispatcher {
	var n domain.Notifier = notify.Log{}
	if cfg.TwilioEnabled() {
		n = notify.NewTwilio(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioPhoneNumber, "", cfg.DefaultCountryCode)
		log.Println("📨 SMS notifications via Twilio")
	} else {
		log.Println("📨 Twilio not configured, notifications are logged only")
	}
	return notify.NewDispatcher(n, cfg.NotifyTimeout)
}

func newKnowledge(ctx context.Context, cfg *config.Config, catalog *site.Catalog) domain.KnowledgeService {
	if cfg.GeminiAPIKey == "" {
		log.Println("🧠 GEMINI_API_KEY not set, general questions will be declined")
		return gemini.Unavailable{}
	}
	k, err := gemini.NewKnowledge(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, gemini.SystemPrompt(catalog.Company), cfg.KnowledgeTimeout)
	if err != nil {
		log.Printf("⚠️ Knowledge backend unavailable: %v", err)
		return gemini.Unavailable{}
	}
	return k
}

func loadSite(cfg *config.Config) *site.Catalog {
	catalog, err := site.Load(cfg.SiteCatalog)
	if err != nil {
		exitErr("site catalog", err)
	}
	return catalog
}

func loadAppointments(cfg *config.Config) *calendar.Book {
	book, err := calendar.Load(cfg.AppointmentsFile)
	if err != nil {
		exitErr("appointments", err)
	}
	return book
}
