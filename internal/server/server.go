package server

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/tartampluch/go-biorhythm/internal/config"
)

// feedItem is one published critical-day calendar with its HTTP validators.
type feedItem struct {
	data         []byte
	profile      string
	events       int
	etag         string
	lastModified string // RFC1123, as HTTP headers require
}

// FeedServer serves the active profile's upcoming critical days as an
// iCalendar feed on localhost, so calendar apps can subscribe to it.
type FeedServer struct {
	// feed is read on every request and replaced only when the reference
	// date changes, so readers never take a lock.
	feed atomic.Pointer[feedItem]
	Port string
}

// NewFeedServer creates a server for the given port.
func NewFeedServer(port string) *FeedServer {
	return &FeedServer{Port: port}
}

// URL is the subscription address shown to the user.
func (s *FeedServer) URL() string {
	return fmt.Sprintf(config.FormatFeedURL, config.LocalhostBindAddr, s.Port, config.RouteFeed)
}

// Start listens on localhost and blocks until ctx is cancelled.
func (s *FeedServer) Start(ctx context.Context) error {
	if s.Port == "" {
		return errors.New(config.ErrPortRequired)
	}

	mux := http.NewServeMux()
	mux.HandleFunc(config.RouteRoot, s.handleFeed)
	mux.HandleFunc(config.RouteFeed, s.handleFeed)

	srv := &http.Server{
		Addr:         config.LocalhostBindAddr + config.AddrSeparator + s.Port,
		Handler:      mux,
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: config.ServerWriteTimeout,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	serverError := make(chan error, config.ChannelBufferSize)

	go func() {
		slog.Info(config.MsgServerListen,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyPort, s.Port,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverError <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info(config.MsgServerStop, config.LogKeyComponent, config.CompServer)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("%s: %w", config.ErrServerShutdown, err)
		}
		return nil

	case err := <-serverError:
		return fmt.Errorf("%s: %w", config.ErrServerStartup, err)
	}
}

// Publish replaces the served calendar. profile names the reference date's
// owner and may be empty.
func (s *FeedServer) Publish(profile string, data []byte, events int) {
	hash := sha256.Sum256(data)
	etag := fmt.Sprintf(config.FormatETag, hex.EncodeToString(hash[:]))

	s.feed.Store(&feedItem{
		data:         data,
		profile:      profile,
		events:       events,
		etag:         etag,
		lastModified: time.Now().UTC().Format(http.TimeFormat),
	})

	slog.Debug(config.MsgFeedUpdated,
		config.LogKeyComponent, config.CompServer,
		config.LogKeyName, profile,
		config.LogKeyCount, events,
		config.LogKeySizeBytes, len(data),
		config.LogKeyETag, etag,
	)
}

// Withdraw stops serving a calendar until the next Publish; clients get 503.
func (s *FeedServer) Withdraw() {
	if s.feed.Swap(nil) != nil {
		slog.Debug(config.MsgFeedWithdrawn, config.LogKeyComponent, config.CompServer)
	}
}

// Published reports whether a calendar is currently served.
func (s *FeedServer) Published() bool {
	return s.feed.Load() != nil
}

func (s *FeedServer) handleFeed(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set(config.HeaderAllow, config.AllowedMethods)
		http.Error(w, config.HTTPMsgMethodNotAll, http.StatusMethodNotAllowed)
		return
	}

	item := s.feed.Load()
	if item == nil {
		w.Header().Set(config.HeaderRetryAfter, config.RetryAfterSeconds)
		http.Error(w, config.HTTPMsgInitializing, http.StatusServiceUnavailable)
		return
	}

	h := w.Header()
	h.Set(config.HeaderContentType, config.MimeTextCalendar)
	h.Set(config.HeaderXContentType, config.MimeNoSniff)
	h.Set(config.HeaderCacheControl, config.CacheControlPrivate)
	h.Set(config.HeaderETag, item.etag)
	h.Set(config.HeaderLastModified, item.lastModified)
	h.Set(config.HeaderCriticalDays, strconv.Itoa(item.events))
	if item.profile != "" {
		h.Set(config.HeaderFeedProfile, item.profile)
	}

	if match := r.Header.Get(config.HeaderIfNoneMatch); match == item.etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	if since := r.Header.Get(config.HeaderIfModifiedSince); since != "" {
		if clientTime, err := time.Parse(http.TimeFormat, since); err == nil {
			if serverTime, err := time.Parse(http.TimeFormat, item.lastModified); err == nil {
				if !serverTime.After(clientTime) {
					w.WriteHeader(http.StatusNotModified)
					return
				}
			}
		}
	}

	if r.Method == http.MethodGet {
		if _, err := io.Copy(w, bytes.NewReader(item.data)); err != nil {
			slog.Error(config.ErrWriteResp,
				config.LogKeyComponent, config.CompServer,
				config.LogKeyError, err,
			)
		}
	}
}
