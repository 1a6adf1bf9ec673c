package feewindow

import (
	"slices"
	"sync"

	"github.com/stellar/txresult/amount"
	"github.com/stellar/txresult/txresult"
)

type FeeDistribution struct {
	Max      uint64
	Min      uint64
	Mode     uint64
	P10      uint64
	P20      uint64
	P30      uint64
	P40      uint64
	P50      uint64
	P60      uint64
	P70      uint64
	P80      uint64
	P90      uint64
	P95      uint64
	P99      uint64
	FeeCount uint32
}

// FeeWindow keeps the fees charged by the most recently decoded results,
// evicting the oldest once it holds capacity fees.
type FeeWindow struct {
	lock         sync.RWMutex
	fees         []uint64
	start        uint32
	capacity     uint32
	distribution FeeDistribution
}

func NewFeeWindow(capacity uint32) *FeeWindow {
	if capacity == 0 {
		panic("fee window capacity must be positive")
	}
	return &FeeWindow{
		fees:     make([]uint64, 0, capacity),
		capacity: capacity,
	}
}

// AppendFees adds fees to the window and recomputes the distribution.
func (fw *FeeWindow) AppendFees(fees ...uint64) {
	if len(fees) == 0 {
		return
	}
	fw.lock.Lock()
	defer fw.lock.Unlock()
	for _, fee := range fees {
		if uint32(len(fw.fees)) < fw.capacity {
			fw.fees = append(fw.fees, fee)
			continue
		}
		fw.fees[fw.start] = fee
		fw.start = (fw.start + 1) % fw.capacity
	}
	fw.distribution = computeFeeDistribution(slices.Clone(fw.fees))
}

// AppendAmounts adds the fees that fit a uint64, skipping negative or
// oversized ones.
func (fw *FeeWindow) AppendAmounts(amounts ...amount.Amount) {
	fees := make([]uint64, 0, len(amounts))
	for _, a := range amounts {
		if fee, ok := feeOf(a); ok {
			fees = append(fees, fee)
		}
	}
	fw.AppendFees(fees...)
}

// IngestResult records the fee charged by a decoded result.
func (fw *FeeWindow) IngestResult(result *txresult.TransactionResult) {
	fw.AppendAmounts(result.FeeCharged())
}

func feeOf(a amount.Amount) (uint64, bool) {
	v, ok := a.Int64()
	if !ok || v < 0 {
		return 0, false
	}
	return uint64(v), true
}

func (fw *FeeWindow) Len() uint32 {
	fw.lock.RLock()
	defer fw.lock.RUnlock()
	return uint32(len(fw.fees))
}

func (fw *FeeWindow) GetFeeDistribution() FeeDistribution {
	fw.lock.RLock()
	defer fw.lock.RUnlock()
	return fw.distribution
}

func computeFeeDistribution(fees []uint64) FeeDistribution {
	if len(fees) == 0 {
		return FeeDistribution{}
	}
	slices.Sort(fees)
	mode := fees[0]
	lastVal := fees[0]
	maxRepetitions := 0
	localRepetitions := 0
	for i := 1; i < len(fees); i++ {
		if fees[i] == lastVal {
			localRepetitions++
			if localRepetitions > maxRepetitions {
				// ties keep the smallest value
				maxRepetitions = localRepetitions
				mode = lastVal
			}
			continue
		}
		lastVal = fees[i]
		localRepetitions = 0
	}
	count := uint64(len(fees))
	// nearest-rank percentile
	percentile := func(p uint64) uint64 {
		// ceiling(p*count/100)
		kth := ((p * count) + 100 - 1) / 100
		return fees[kth-1]
	}
	return FeeDistribution{
		Max:      fees[len(fees)-1],
		Min:      fees[0],
		Mode:     mode,
		P10:      percentile(10),
		P20:      percentile(20),
		P30:      percentile(30),
		P40:      percentile(40),
		P50:      percentile(50),
		P60:      percentile(60),
		P70:      percentile(70),
		P80:      percentile(80),
		P90:      percentile(90),
		P95:      percentile(95),
		P99:      percentile(99),
		FeeCount: uint32(count),
	}
}
