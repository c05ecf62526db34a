// Package catapi is the HTTP client for the cat-voting backend.
//
// # Overview
//
// Every backend response is wrapped in an envelope:
//
//	{"status": "success", "data": ...}
//	{"status": "error", "message": "..."}
//
// The client decodes the envelope once, returns a *StatusError when the
// status is not success, and only then unmarshals data into the typed result.
// Callers never see a raw envelope.
//
// # Endpoints
//
//   - GET    /api/cats           FetchCats
//   - POST   /api/vote           SubmitVote
//   - GET    /api/breeds         FetchBreeds
//   - GET    /api/breed?id=<id>  FetchBreedDetail
//   - GET    /api/favorites      FetchFavorites
//   - DELETE /api/favorites/:id  DeleteFavorite
//
// # Field casing
//
// /api/breeds has been observed with both id/name and ID/Name keys.
// BreedSummary.UnmarshalJSON folds both into one shape so nothing above this
// package needs to care.
//
// # Images
//
// ProbeImage fetches an image URL and decodes only its header. The UI uses it
// the way a browser uses an <img> load event: failure means the image is
// broken and the caller applies its fallback (placeholder or removal).
// ProbeAll fans probes out with a bounded errgroup.
//
// # Errors
//
// Nothing is retried. Transport and decode failures are wrapped with
// fmt.Errorf; status failures are *StatusError and can be detected with
// IsStatusError or errors.As.
package catapi
