// internal/app/features/clubs/settings.go
package clubs

import (
	"context"
	"net/http"
	"time"

	"github.com/dalemusser/clubhub/internal/app/policy/clubpolicy"
	"github.com/dalemusser/clubhub/internal/app/store/clubs"
	"github.com/dalemusser/clubhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/clubhub/internal/app/system/httpjson"
	"github.com/dalemusser/clubhub/internal/app/system/normalize"
	"github.com/dalemusser/clubhub/internal/app/system/timeouts"
	"github.com/dalemusser/clubhub/internal/domain/models"
	"go.uber.org/zap"
)

type settingsInput struct {
	Name           *string                `json:"name"`
	Sports         []string               `json:"sports"`
	Description    *string                `json:"description"`
	Established    *time.Time             `json:"established"`
	Registration   *models.ClubRegistration `json:"registration"`
	Contact        *models.ClubContact    `json:"contact"`
	Address        *models.ClubAddress    `json:"address"`
	Settings       *models.ClubSettings   `json:"settings"`
	OperatingHours models.OperatingHours  `json:"operating_hours"`
	Features       *models.ClubFeatures   `json:"features"`
}

// HandleUpdateSettings merge-patches a club's settings surfaces. Requires
// the manage_settings action. The slug never changes, even on rename.
func (h *Handler) HandleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	clubID, ok := clubpolicy.ClubID(r)
	if !ok {
		httpjson.NotFound(w, "club not found")
		return
	}

	var in settingsInput
	if !httpjson.Decode(w, r, &in) {
		return
	}
	if in.Settings != nil && in.Settings.FiscalYearStart != 0 &&
		(in.Settings.FiscalYearStart < 1 || in.Settings.FiscalYearStart > 12) {
		httpjson.Error(w, http.StatusBadRequest, "fiscal_year_start must be a month 1-12")
		return
	}
	for day, sched := range in.OperatingHours {
		switch day {
		case "monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday":
		default:
			httpjson.Error(w, http.StatusBadRequest, "operating_hours has an unknown day: "+day)
			return
		}
		if sched.IsOpen && (sched.OpenTime == "" || sched.CloseTime == "") {
			httpjson.Error(w, http.StatusBadRequest, "open days need open_time and close_time")
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	upd := clubstore.SettingsUpdate{
		Sports:         in.Sports,
		Contact:        in.Contact,
		Address:        in.Address,
		Settings:       in.Settings,
		OperatingHours: in.OperatingHours,
		Features:       in.Features,
	}
	if in.Name != nil {
		name := normalize.Name(htmlsanitize.Plain(*in.Name))
		upd.Name = &name
	}
	if in.Description != nil || in.Established != nil || in.Registration != nil {
		club, err := h.Clubs.GetByID(ctx, clubID)
		if err != nil {
			if err == clubstore.ErrClubNotFound {
				httpjson.NotFound(w, "club not found")
				return
			}
			h.Log.Error("settings: club load failed", zap.String("club_id", clubID.Hex()), zap.Error(err))
			httpjson.Error(w, http.StatusInternalServerError, "settings update failed")
			return
		}
		profile := club.Profile
		if in.Description != nil {
			profile.Description = htmlsanitize.Plain(*in.Description)
		}
		if in.Established != nil {
			profile.Established = in.Established
		}
		if in.Registration != nil {
			profile.Registration = *in.Registration
		}
		upd.Profile = &profile
	}

	if err := h.Clubs.Update(ctx, clubID, upd); err != nil {
		if err == clubstore.ErrClubNotFound {
			httpjson.NotFound(w, "club not found")
			return
		}
		h.Log.Error("settings update failed", zap.String("club_id", clubID.Hex()), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "settings update failed")
		return
	}

	club, err := h.Clubs.GetByID(ctx, clubID)
	if err != nil {
		h.Log.Error("settings: reload failed", zap.String("club_id", clubID.Hex()), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "settings update failed")
		return
	}
	httpjson.Write(w, http.StatusOK, club)
}
