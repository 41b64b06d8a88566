// Package github provides a client for the GitHub gists API.
//
// The client covers exactly the two calls this tool needs: paginated
// listing of a user's gists and raw-content retrieval of individual gist
// files. Listing walks pages until the API is exhausted or an accumulated
// limit is reached, parsing the rate-limit headers of every response into
// a RateLimit snapshot for observability. The snapshot is never used to
// gate requests; an exhausted quota surfaces as a regular HTTP error on
// the next call.
//
// All failures are reported as *APIError with a Kind of http, decode or
// transport. The client performs no retries; wrap calls with a retry
// policy at the call site if one is needed.
package github
