package notify_fx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"nwptourism/internal/config"
	"nwptourism/internal/infra"
	"nwptourism/internal/services"
)

var Module = fx.Provide(provideNotifier)

func provideNotifier(lc fx.Lifecycle, cfg config.Config, log *zap.Logger) (services.Notifier, error) {
	var notifiers services.MultiNotifier

	if cfg.Mail.Enabled() {
		mail, err := services.NewSMTPMailService(services.SMTPConfig{
			Host:       cfg.Mail.Host,
			Port:       cfg.Mail.Port,
			Username:   cfg.Mail.Username,
			Password:   cfg.Mail.Password,
			From:       cfg.Mail.Username,
			FromName:   "NWP Tourism",
			UseSSL:     cfg.Mail.UseSSL,
			RequireTLS: true,
			AppName:    "NWP Tourism",
		})
		if err != nil {
			return nil, err
		}
		notifiers = append(notifiers, services.NewMailNotifier(mail, cfg.Mail.NotifyTo))
	} else {
		log.Warn("Email settings not found, email notifications are disabled")
	}

	if cfg.NATS.Enabled() {
		nc, err := infra.ConnectNATS(cfg.NATS)
		if err != nil {
			return nil, err
		}
		lc.Append(fx.Hook{
			OnStop: func(context.Context) error {
				return nc.Drain()
			},
		})
		notifiers = append(notifiers, services.NewNATSNotifier(nc, cfg.NATS.Subject))
		log.Info("publishing feedback events to nats", zap.String("subject", cfg.NATS.Subject))
	}

	if len(notifiers) == 0 {
		return services.NoopNotifier{}, nil
	}
	return notifiers, nil
}
