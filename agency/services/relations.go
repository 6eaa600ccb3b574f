package services

import (
	"errors"
	"log/slog"
	"net/http"

	"agency_platform/agency/registry"
	"agency_platform/agency/schema"
	"agency_platform/utils"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"
)

// RelationService toggles rows in the three many-to-many join tables. Both
// endpoints of a pair must exist, a duplicate pair is a conflict, and
// removing an absent pair is a not found.
type RelationService struct {
	db     *gorm.DB
	tables registry.Registry
}

type relationPair struct {
	left, right string
	condition   string

	blank    func() interface{}
	relation func(leftId, rightId int64) interface{}

	linkedMsg   string
	unlinkedMsg string
}

var artistPerformancePair = relationPair{
	left: "artist", right: "performance",
	condition: "artist_id = ? AND performance_id = ?",
	blank:     func() interface{} { return &schema.ArtistPerformance{} },
	relation: func(a, b int64) interface{} {
		return &schema.ArtistPerformance{ArtistId: a, PerformanceId: b}
	},
	linkedMsg:   "Artist linked to performance",
	unlinkedMsg: "Artist unlinked from performance",
}

var organizerConcertProgramPair = relationPair{
	left: "organizer", right: "concert_program",
	condition: "organizer_id = ? AND concert_program_id = ?",
	blank:     func() interface{} { return &schema.OrganizerConcertProgram{} },
	relation: func(a, b int64) interface{} {
		return &schema.OrganizerConcertProgram{OrganizerId: a, ConcertProgramId: b}
	},
	linkedMsg:   "Organizer linked to concert program",
	unlinkedMsg: "Organizer unlinked from concert program",
}

var performanceConcertProgramPair = relationPair{
	left: "performance", right: "concert_program",
	condition: "performance_id = ? AND concert_program_id = ?",
	blank:     func() interface{} { return &schema.PerformanceConcertProgram{} },
	relation: func(a, b int64) interface{} {
		return &schema.PerformanceConcertProgram{PerformanceId: a, ConcertProgramId: b}
	},
	linkedMsg:   "Performance linked to concert program",
	unlinkedMsg: "Performance unlinked from concert program",
}

// RegisterRoutes adds the six relation toggles. The url parameters reuse the
// {item_id} name from the crud routes so chi sees a consistent parameter at
// each position in the tree.
func (s *RelationService) RegisterRoutes(r chi.Router) {
	for _, pair := range []relationPair{artistPerformancePair, organizerConcertProgramPair, performanceConcertProgramPair} {
		base := "/" + pair.left + "/{item_id}/" + pair.right + "/{other_id}"
		r.Post(base+"/add", s.Link(pair))
		r.Post(base+"/remove", s.Unlink(pair))
	}
}

func (s *RelationService) pairIds(w http.ResponseWriter, r *http.Request) (int64, int64, bool) {
	leftId, err := utils.URLParamInt(r, "item_id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return 0, 0, false
	}
	rightId, err := utils.URLParamInt(r, "other_id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return 0, 0, false
	}
	return leftId, rightId, true
}

func (s *RelationService) Link(pair relationPair) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		leftId, rightId, ok := s.pairIds(w, r)
		if !ok {
			return
		}

		err := s.db.Transaction(func(txn *gorm.DB) error {
			if err := checkRecordExists(txn, s.tables[pair.left], leftId); err != nil {
				return err
			}
			if err := checkRecordExists(txn, s.tables[pair.right], rightId); err != nil {
				return err
			}

			result := txn.Limit(1).Find(pair.blank(), pair.condition, leftId, rightId)
			if result.Error != nil {
				slog.Error("sql error checking for existing relation", "left", pair.left, "right", pair.right, "error", result.Error)
				return CodedError(result.Error, http.StatusInternalServerError)
			}
			if result.RowsAffected != 0 {
				return CodedError(errors.New("Relation already exists"), http.StatusConflict)
			}

			if result := txn.Create(pair.relation(leftId, rightId)); result.Error != nil {
				slog.Error("sql error creating relation", "left", pair.left, "right", pair.right, "error", result.Error)
				return CodedError(result.Error, http.StatusInternalServerError)
			}
			return nil
		})

		if err != nil {
			http.Error(w, err.Error(), GetResponseCode(err))
			return
		}

		slog.Info("linked relation", "left", pair.left, "left_id", leftId, "right", pair.right, "right_id", rightId)
		utils.WriteJsonResponse(w, statusResponse{Message: pair.linkedMsg})
	}
}

func (s *RelationService) Unlink(pair relationPair) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		leftId, rightId, ok := s.pairIds(w, r)
		if !ok {
			return
		}

		err := s.db.Transaction(func(txn *gorm.DB) error {
			result := txn.Limit(1).Find(pair.blank(), pair.condition, leftId, rightId)
			if result.Error != nil {
				slog.Error("sql error checking for existing relation", "left", pair.left, "right", pair.right, "error", result.Error)
				return CodedError(result.Error, http.StatusInternalServerError)
			}
			if result.RowsAffected == 0 {
				return CodedError(errors.New("Relation not found"), http.StatusNotFound)
			}

			if result := txn.Delete(pair.relation(leftId, rightId)); result.Error != nil {
				slog.Error("sql error deleting relation", "left", pair.left, "right", pair.right, "error", result.Error)
				return CodedError(result.Error, http.StatusInternalServerError)
			}
			return nil
		})

		if err != nil {
			http.Error(w, err.Error(), GetResponseCode(err))
			return
		}

		slog.Info("unlinked relation", "left", pair.left, "left_id", leftId, "right", pair.right, "right_id", rightId)
		utils.WriteJsonResponse(w, statusResponse{Message: pair.unlinkedMsg})
	}
}
