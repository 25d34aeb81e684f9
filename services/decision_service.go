package services

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/gsq7474741/Rubbish/models"
)

// DecisionService tallies reviewer recommendations for a paper and moves it
// through the submitted -> under_review -> published/rejected_too_good
// lifecycle. It runs synchronously inside the review submission request.
type DecisionService struct {
	db *gorm.DB
}

func NewDecisionService(db *gorm.DB) *DecisionService {
	return &DecisionService{db: db}
}

// QuorumThreshold is the minimum review count before a decision can be
// computed. Open venues wait for 3 reviews, blind venues for 2. Instant-mode
// papers are published at submission and never reach the engine.
func QuorumThreshold(mode string) int {
	if mode == models.ReviewModeOpen {
		return 3
	}
	return 2
}

// EvaluateRecommendations decides the editorial outcome for a set of
// recommendations, given in submission order. It returns false when no
// decision can be made yet.
//
// Rules:
//   - fewer than 2 reviews: never decide, regardless of mode
//   - fewer than QuorumThreshold(mode) reviews: no decision
//   - a recommendation held by a strict majority (count > total/2) wins
//   - open mode only: without a majority, the most common recommendation
//     wins, ties broken by earliest first submission
//   - blind mode has no fallback; the paper stays under review until a
//     majority emerges from additional reviews
func EvaluateRecommendations(recs []string, mode string) (string, bool) {
	if len(recs) < 2 {
		return "", false
	}
	if len(recs) < QuorumThreshold(mode) {
		return "", false
	}

	counts := make(map[string]int, 3)
	order := make([]string, 0, 3)
	for _, rec := range recs {
		if _, seen := counts[rec]; !seen {
			order = append(order, rec)
		}
		counts[rec]++
	}

	for _, rec := range order {
		if counts[rec]*2 > len(recs) {
			return rec, true
		}
	}

	if mode != models.ReviewModeOpen {
		return "", false
	}

	// Plurality fallback. Iterating first-occurrence order and requiring a
	// strictly higher count keeps the tie-break pinned to submission time.
	best := ""
	for _, rec := range order {
		if best == "" || counts[rec] > counts[best] {
			best = rec
		}
	}
	if best == "" {
		return "", false
	}
	return best, true
}

// StatusForDecision maps a decision to the paper status it implies.
func StatusForDecision(decision string) string {
	if decision == models.DecisionTooGood {
		return models.StatusRejectedTooGood
	}
	return models.StatusPublished
}

// ProcessNewReview runs immediately after a review has been persisted for
// paper. It bootstraps the under_review status, re-tallies all reviews and
// commits a decision once quorum and majority/plurality rules are satisfied.
//
// An error from this path means a persistence failure of primary paper data
// and must surface as a server error; the review itself has already been
// written and is not rolled back.
func (s *DecisionService) ProcessNewReview(paper *models.Paper) error {
	now := time.Now()

	if paper.Status == models.StatusSubmitted {
		if err := s.db.Model(&models.Paper{}).
			Where("paper_id = ?", paper.PaperID).
			Updates(map[string]interface{}{
				"status":    models.StatusUnderReview,
				"update_at": now,
			}).Error; err != nil {
			return fmt.Errorf("failed to move paper %s under review: %w", paper.PaperID, err)
		}
		paper.Status = models.StatusUnderReview
	}

	// Decisions are immutable. A paper that somehow receives reviews after
	// being decided must not be re-evaluated.
	if paper.Decision != nil {
		return nil
	}

	var recs []string
	if err := s.db.Model(&models.Review{}).
		Where("paper_id = ?", paper.PaperID).
		Order("create_at ASC").
		Pluck("recommendation", &recs).Error; err != nil {
		return fmt.Errorf("failed to load reviews for paper %s: %w", paper.PaperID, err)
	}

	decision, ok := EvaluateRecommendations(recs, paper.ReviewMode)
	if !ok {
		return nil
	}

	newStatus := StatusForDecision(decision)

	// Compare-and-set on decision IS NULL: two reviewers crossing the
	// threshold concurrently race to this update, and only one row write
	// can land.
	res := s.db.Model(&models.Paper{}).
		Where("paper_id = ? AND decision IS NULL", paper.PaperID).
		Updates(map[string]interface{}{
			"decision":    decision,
			"decision_at": now,
			"status":      newStatus,
			"update_at":   now,
		})
	if res.Error != nil {
		return fmt.Errorf("failed to record decision for paper %s: %w", paper.PaperID, res.Error)
	}
	if res.RowsAffected == 0 {
		// A concurrent submission already committed a decision.
		return nil
	}

	paper.Decision = &decision
	paper.DecisionAt = &now
	paper.Status = newStatus

	link := "/paper/" + paper.PaperID
	Notify(s.db, paper.AuthorID, "decision", "Decision on your paper",
		fmt.Sprintf("Your paper has received a decision: %s", models.DecisionLabels[decision]), &link)

	return nil
}
