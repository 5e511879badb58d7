// Package bonus — бонусы регистраторов за вехи продаж.
// Чистая агрегация по заказам: за каждые MILESTONE монет,
// оформленных сотрудником, начисляется фиксированный бонус в USD.
package bonus

// RegistrarStat — агрегат заказов одного регистратора.
type RegistrarStat struct {
	RegisteredBy string `db:"registered_by"`
	OrderCount   int    `db:"order_count"`
	TotalCoins   int64  `db:"total_coins"`
}

// Report — начисленный бонус и прогресс к следующей вехе.
type Report struct {
	Stat          RegistrarStat
	Milestones    int64   // floor(total_coins / milestoneCoins)
	BonusUSD      float64 // milestones × bonusPerMilestone
	ProgressCoins int64   // total_coins mod milestoneCoins
	ProgressPct   int     // Прогресс к следующей вехе, 0..99
}

// Compute считает бонус. Чистая функция от исторических данных.
func Compute(stat RegistrarStat, milestoneCoins int64, bonusPerMilestoneUSD float64) Report {
	milestones := stat.TotalCoins / milestoneCoins
	progress := stat.TotalCoins % milestoneCoins
	return Report{
		Stat:          stat,
		Milestones:    milestones,
		BonusUSD:      float64(milestones) * bonusPerMilestoneUSD,
		ProgressCoins: progress,
		ProgressPct:   int(progress * 100 / milestoneCoins),
	}
}
