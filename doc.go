// Package pagecluster groups HTML pages by structure, online.
//
// Each page is reduced to a bag of element/class tokens ("div item",
// "span meta"). The token vocabulary grows as pages arrive, so feature
// vectors get wider over time; the cluster centers widen with them and
// existing centers keep zero weight on tokens they have never seen.
//
// Pages are buffered and folded into the centers with one mini-batch
// k-means step per batch. Points further than MaxStdDev standard deviations
// from their nearest center are dropped before the update, once that center
// holds more than MinClusterPoints points.
//
// # Quick Start
//
// Unseeded, with k-means++ initialization on the first batch:
//
//	ctx := context.Background()
//	c, _ := pagecluster.New(5)
//	for _, p := range pages {
//	    if err := c.AddPage(ctx, p); err != nil { ... }
//	}
//	label, _ := c.Classify(page) // 0..4, or pagecluster.Outlier
//
// Seeded with one exemplar per cluster:
//
//	c, _ := pagecluster.NewFromSamples([]pagecluster.Sample{
//	    {URL: "https://example.com/question/1", Body: questionHTML},
//	    {URL: "https://example.com/user/1", Body: userHTML},
//	})
//
// Pages are parsed with htmlpage.Parse.
//
// # Persistence
//
// A session can be snapshotted to any blobstore.Store and restored later,
// including its vocabulary and unflushed buffer:
//
//	store, _ := badger.OpenInMemory()
//	_ = c.Save(ctx, store, "session.snap")
//	c, _ = pagecluster.Load(ctx, store, "session.snap")
//
// WithCheckpointer saves automatically after flushes.
//
// # Concurrency
//
// A Clusterer is not safe for concurrent use.
package pagecluster
