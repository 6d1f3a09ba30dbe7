package compat

import "evalgo.org/vcfcompat/models"

// DefaultTargetRelease is the release required for VCF 9.
const DefaultTargetRelease = "ESXi 9.0"

// Classify maps a compatibility result to its bucket. Sentinels are checked
// before the release list.
func Classify(r models.CompatibilityResult, targetRelease string) models.Bucket {
	switch r.Kind {
	case models.KindUnresolved:
		return models.BucketUnresolved
	case models.KindNotApplied:
		return models.BucketNotApplied
	case models.KindNotFound:
		return models.BucketNotFound
	}
	if r.Supports(targetRelease) {
		return models.BucketVCF9Compatible
	}
	return models.BucketNotCompatible
}

// Aggregate groups classified hosts by bucket and model label. Buckets and
// model labels without hosts are left out.
func Aggregate(hosts []models.ClassifiedHost) models.BucketMap {
	buckets := models.BucketMap{}
	for _, h := range hosts {
		byModel, ok := buckets[h.Bucket]
		if !ok {
			byModel = map[string][]models.ClassifiedHost{}
			buckets[h.Bucket] = byModel
		}
		byModel[h.Model] = append(byModel[h.Model], h)
	}
	return buckets
}
