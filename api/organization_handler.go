package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/gbur-rwanda/gbur-backend/models"
	"github.com/gbur-rwanda/gbur-backend/query"
	"github.com/gbur-rwanda/gbur-backend/services"
	"github.com/gbur-rwanda/gbur-backend/validation"
)

type organizationHandler struct {
	responder Responder
	logger    zerolog.Logger
	org       *services.OrganizationService
}

func newOrganizationHandler(org *services.OrganizationService, production bool) organizationHandler {
	logger := log.With().Str("handlerName", "organizationHandler").Logger()

	return organizationHandler{
		responder: NewResponder(logger, production),
		logger:    logger,
		org:       org,
	}
}

type regionCollection struct {
	Regions []models.Region `json:"regions"`
}

type universityCollection struct {
	Universities []models.University `json:"universities"`
}

type regionalStaffCollection struct {
	RegionalStaff []models.RegionalStaff `json:"regionalStaff"`
}

type smallGroupCollection struct {
	SmallGroups []models.SmallGroup `json:"smallGroups"`
}

func (h organizationHandler) overview() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteJSON(w, h.org.Overview(r.Context()))
	}
}

func (h organizationHandler) listRegions() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		regions, err := h.org.Regions(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, regionCollection{Regions: regions})
	}
}

func (h organizationHandler) createRegion() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in validation.RegionInput
		if err := decodeJSON(w, r, &in); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		region, err := h.org.CreateRegion(r.Context(), in)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSONStatus(w, http.StatusCreated, region)
	}
}

func (h organizationHandler) listUniversities() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		universities, err := h.org.Universities(r.Context(), query.ParseOrgFilter(r.URL.Query()))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, universityCollection{Universities: universities})
	}
}

func (h organizationHandler) createUniversity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in validation.UniversityInput
		if err := decodeJSON(w, r, &in); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		university, err := h.org.CreateUniversity(r.Context(), in)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSONStatus(w, http.StatusCreated, university)
	}
}

func (h organizationHandler) updateUniversity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validation.ParseID("id", chi.URLParam(r, "id"))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var in validation.UniversityInput
		if err := decodeJSON(w, r, &in); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		university, err := h.org.UpdateUniversity(r.Context(), id, in)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, university)
	}
}

func (h organizationHandler) deleteUniversity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validation.ParseID("id", chi.URLParam(r, "id"))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := h.org.DeleteUniversity(r.Context(), id); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, deletedResponse("University"))
	}
}

func (h organizationHandler) listRegionalStaff() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		staff, err := h.org.RegionalStaff(r.Context(), query.ParseOrgFilter(r.URL.Query()))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, regionalStaffCollection{RegionalStaff: staff})
	}
}

func (h organizationHandler) createRegionalStaff() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in validation.RegionalStaffInput
		if err := decodeJSON(w, r, &in); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		staff, err := h.org.CreateRegionalStaff(r.Context(), in)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSONStatus(w, http.StatusCreated, staff)
	}
}

// listSmallGroups ignores an unknown ?type rather than rejecting it.
func (h organizationHandler) listSmallGroups() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		groups, err := h.org.SmallGroups(r.Context(), query.ParseSmallGroupFilter(r.URL.Query()))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, smallGroupCollection{SmallGroups: groups})
	}
}

func (h organizationHandler) createSmallGroup() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in validation.SmallGroupInput
		if err := decodeJSON(w, r, &in); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		group, err := h.org.CreateSmallGroup(r.Context(), in)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSONStatus(w, http.StatusCreated, group)
	}
}

func (h organizationHandler) updateSmallGroup() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validation.ParseID("id", chi.URLParam(r, "id"))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var in validation.SmallGroupInput
		if err := decodeJSON(w, r, &in); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		group, err := h.org.UpdateSmallGroup(r.Context(), id, in)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, group)
	}
}

func (h organizationHandler) deleteSmallGroup() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validation.ParseID("id", chi.URLParam(r, "id"))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := h.org.DeleteSmallGroup(r.Context(), id); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, deletedResponse("Small group"))
	}
}
