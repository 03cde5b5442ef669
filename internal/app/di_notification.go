package app

import (
	grantsDomain "github.com/allisson/grants/internal/grants/domain"
	"github.com/allisson/grants/internal/notification"
)

// Mailer returns the SMTP mailer for delivery emails.
func (c *Container) Mailer() notification.Mailer {
	c.mailerInit.Do(func() {
		c.mailer = notification.NewSMTPMailer(notification.SMTPConfig{
			Host:         c.config.SMTPHost,
			Port:         c.config.SMTPPort,
			FallbackPort: c.config.SMTPFallbackPort,
			Username:     c.config.SMTPUsername,
			Password:     c.config.SMTPPassword,
			From:         c.config.SMTPFrom,
			LinkTTL:      c.config.GrantTTL,
			ProductNames: map[grantsDomain.Tier]string{
				grantsDomain.TierDemo:     c.config.DemoProductName,
				grantsDomain.TierLifetime: c.config.LifetimeProductName,
			},
		}, c.Logger())
	})
	return c.mailer
}

// Dispatcher returns the asynchronous delivery dispatcher.
// Workers start on first access and run until Shutdown drains the queue.
func (c *Container) Dispatcher() *notification.Dispatcher {
	c.dispatcherInit.Do(func() {
		c.dispatcher = notification.NewDispatcher(notification.DispatcherConfig{
			Workers:   c.config.DispatcherWorkers,
			QueueSize: c.config.DispatcherQueueSize,
		}, c.Mailer(), c.Logger())
	})
	return c.dispatcher
}
