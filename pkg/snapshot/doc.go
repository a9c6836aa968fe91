// Package snapshot stores rendered HTML snapshots under slash-separated
// keys, on the local filesystem or in an S3 bucket.
//
// The reconcile command writes the final host tree of a fixture to a store
// with `reconcile render --snapshot`, and compares against a stored
// snapshot with `--check`.
//
//	store, err := snapshot.NewFileStore("snapshots")
//	if err != nil {
//	    return err
//	}
//	err = store.Put(ctx, "counter/final", []byte(html))
package snapshot
