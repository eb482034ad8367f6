package gamification

import (
	"strings"

	"github.com/google/uuid"
)

const (
	// PointsPerTree is the donation price of one planted tree.
	PointsPerTree = 20
	// TipPoints is awarded for each implemented tip.
	TipPoints = 50
	// UnlimitedStock marks rewards that never run out.
	UnlimitedStock = -1
)

// RedemptionCode returns an 8 character uppercase voucher code.
func RedemptionCode() string {
	id := strings.ReplaceAll(uuid.New().String(), "-", "")
	return strings.ToUpper(id[:8])
}

// DonationTrees converts donated points to whole trees. The full donation is
// spent, including any remainder below PointsPerTree.
func DonationTrees(points int) (int, error) {
	if points < PointsPerTree {
		return 0, ErrDonationTooSmall
	}
	return points / PointsPerTree, nil
}

// CanAfford reports whether balance covers cost.
func CanAfford(balance, cost int) error {
	if balance < cost {
		return ErrInsufficientPoint
	}
	return nil
}
