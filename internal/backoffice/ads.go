package backoffice

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	logctx "github.com/thecontemporary/news-portal/internal/pkg/log"
	"github.com/thecontemporary/news-portal/internal/models"
)

// ActiveAds возвращает активные объявления для слота/страницы.
func (c *Client) ActiveAds(ctx context.Context, opts models.AdListOptions) ([]models.Advertisement, error) {
	const op = "backoffice.ads.ActiveAds"

	env, err := c.get(ctx, withQuery("/advertisements/active", opts.Values()))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	items, err := Data[[]models.Advertisement](env)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return items, nil
}

// ListAds возвращает все объявления (админка).
func (c *Client) ListAds(ctx context.Context) ([]models.Advertisement, error) {
	const op = "backoffice.ads.ListAds"

	env, err := c.get(ctx, "/advertisements")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	items, err := Data[[]models.Advertisement](env)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return items, nil
}

// SaveAd создаёт или обновляет объявление (PUT при наличии ID).
func (c *Client) SaveAd(ctx context.Context, ad models.Advertisement) (*models.Advertisement, error) {
	const op = "backoffice.ads.SaveAd"

	var (
		env *Envelope
		err error
	)

	if ad.ID != "" {
		env, err = c.put(ctx, "/advertisements/"+url.PathEscape(ad.ID), ad)
	} else {
		env, err = c.post(ctx, "/advertisements", ad, false)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	saved, err := Data[models.Advertisement](env)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &saved, nil
}

// DeleteAd удаляет объявление по id.
func (c *Client) DeleteAd(ctx context.Context, id string) error {
	const op = "backoffice.ads.DeleteAd"

	if _, err := c.delete(ctx, "/advertisements/"+url.PathEscape(id)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// TrackImpression регистрирует показ объявления. Fire-and-forget:
// любая ошибка гасится — трекинг не должен мешать отдаче страницы.
func (c *Client) TrackImpression(ctx context.Context, id string) {
	c.track(ctx, id, "impression")
}

// TrackClick регистрирует клик по объявлению. Fire-and-forget.
func (c *Client) TrackClick(ctx context.Context, id string) {
	c.track(ctx, id, "click")
}

func (c *Client) track(ctx context.Context, id, event string) {
	if _, err := c.post(ctx, "/advertisements/"+url.PathEscape(id)+"/"+event, nil, false); err != nil {
		logctx.From(ctx).Debug("ad_track_failed",
			slog.String("ad_id", id),
			slog.String("event", event),
			slog.String("err", err.Error()),
		)
	}
}
