package polymarket

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/alejandrodnm/polywatch/internal/domain"
)

const publicProfilePath = "/public-profile"

// FetchProfile obtiene el perfil público de Gamma para la dirección dada.
func (c *Client) FetchProfile(ctx context.Context, address string) (domain.Profile, error) {
	u := fmt.Sprintf("%s%s?address=%s",
		c.gammaBase,
		publicProfilePath,
		url.QueryEscape(strings.ToLower(address)),
	)

	var resp rawProfile
	if err := c.get(ctx, c.gammaLimiter, profileTimeout, u, &resp); err != nil {
		return domain.Profile{}, fmt.Errorf("gamma.FetchProfile: %w", err)
	}
	return mapProfile(address, resp), nil
}
