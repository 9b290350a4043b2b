package svc

import (
	"context"
	"time"

	"liqdepth-api/internal/config"
	"liqdepth-api/pkg/feed"
	"liqdepth-api/pkg/poller"
)

type ServiceContext struct {
	Config config.Config

	FeedConfig *feed.Config
	Feed       *feed.Client
	Poller     *poller.Poller

	stopPolling context.CancelFunc
}

func NewServiceContext(c config.Config, mainConfigPath string) *ServiceContext {
	feedCfg := c.Feed.Value
	if feedCfg == nil {
		feedCfg = feed.DefaultConfig()
	}

	client := feed.NewClient(feed.WithConfig(feedCfg))

	interval := time.Duration(c.PollIntervalMs) * time.Millisecond
	p := poller.New(client, c.DefaultTicker, poller.WithInterval(interval))

	return &ServiceContext{
		Config:     c,
		FeedConfig: feedCfg,
		Feed:       client,
		Poller:     p,
	}
}

// StartPolling launches the poll loop in the background. Safe to call once.
func (s *ServiceContext) StartPolling() {
	ctx, cancel := context.WithCancel(context.Background())
	s.stopPolling = cancel
	go s.Poller.Run(ctx)
}

// StopPolling cancels the background poll loop if it was started.
func (s *ServiceContext) StopPolling() {
	if s.stopPolling != nil {
		s.stopPolling()
	}
}
