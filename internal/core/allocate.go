package core

// Allocation is the output of the cost allocator. FamilyTotals is parallel
// to the participations passed in.
type Allocation struct {
	CostPerLine  float64
	FamilyTotals []float64
}

// Allocate computes the uniform per-line rate and each family's total charge
// for one bill.
//
// Extra service charges are summed only where the flag is enabled; a
// disabled participation contributes zero regardless of any stored cost.
// The remaining line cost is spread uniformly over all lines. When there
// are no lines at all, the rate is exactly 0.
//
// The allocator performs no validation and no clamping: if extra charges
// exceed the total, the line cost (and the rate) go negative and the caller
// decides what to do with that. The batch generator rejects it up front;
// the single-bill path deliberately surfaces the nonsensical result instead.
func Allocate(totalCost float64, parts []Participation) Allocation {
	var extraSum float64
	totalLines := 0
	for _, p := range parts {
		if p.Extra.Enabled {
			extraSum += p.Extra.Cost
		}
		totalLines += p.Lines
	}

	lineCost := totalCost - extraSum
	costPerLine := 0.0
	if totalLines > 0 {
		costPerLine = lineCost / float64(totalLines)
	}

	totals := make([]float64, len(parts))
	for i, p := range parts {
		totals[i] = float64(p.Lines) * costPerLine
		if p.Extra.Enabled {
			totals[i] += p.Extra.Cost
		}
	}

	return Allocation{CostPerLine: costPerLine, FamilyTotals: totals}
}

// NewBillDraft runs the allocator and assembles an unsaved bill (ID 0) for
// the given month. Saving it is a separate, explicit step.
func NewBillDraft(month string, totalCost float64, parts []Participation) Bill {
	alloc := Allocate(totalCost, parts)
	families := make([]Participation, len(parts))
	copy(families, parts)
	return Bill{
		BillMonth:   month,
		TotalCost:   totalCost,
		CostPerLine: alloc.CostPerLine,
		Families:    families,
	}
}

// FamilyCharge recomputes one participation's charge from a materialized
// bill. Here the extra cost is applied unconditionally, unlike the
// allocator's enabled-gated sum: once a bill is saved its stored extra cost
// is treated as final. This asymmetry is inherited behavior and is kept on
// purpose; see the aggregator.
func (b Bill) FamilyCharge(p Participation) float64 {
	return float64(p.Lines)*b.CostPerLine + p.Extra.Cost
}
