// Package reconcile links a licensing dataset to the authority report.
//
// Matching runs in tiers. Each Tier is an inner equi-join on a fixed key set,
// from the licence number alone up to licence number, licensee, name and
// address. A Track runs seven tiers for one dataset; tiers are independent, so
// the same pair of records may appear in several results.
//
// # Components
//
//   - Join and MatchTier: the join itself. Address tiers deduplicate and drop
//     null keys on both sides first, and may read the report in batches.
//   - Consolidate: folds the "_fairtrade"/"_reinsw" variants of shared columns
//     back into one canonical column.
//   - Aggregator: runs a track and consolidates every tier result.
//   - Combine: stacks individual and certificate results per tier.
//
// # Usage
//
//	agg := reconcile.NewAggregator(nil, logger)
//	res, err := agg.Run(reconcile.CertificateTrack("result_cer_reinsw"), reconcile.Inputs{
//	    Source: normalize.Preprocess(certificates),
//	    Report: normalize.EnsureFields(report),
//	})
package reconcile
