// internal/app/features/invites/links.go
package invites

import (
	"net/url"

	"github.com/dalemusser/clubhub/internal/domain/models"
)

// ShareLink builds the URL a recipient follows for an invitation.
//
// Bulk codes use the short join path:
//
//	https://<host>/join/<code>
//
// Targeted codes carry the club explicitly:
//
//	https://<host>/clubs/join?code=<code>&clubId=<clubId>
func ShareLink(baseURL string, inv *models.Invitation) string {
	if inv.IsBulk() {
		return baseURL + "/join/" + inv.Code
	}
	q := url.Values{}
	q.Set("code", inv.Code)
	q.Set("clubId", inv.ClubID.Hex())
	return baseURL + "/clubs/join?" + q.Encode()
}
