// Package github implements a data source reading site content from a
// GitHub repository.
//
// # Configuration
//
// A data_sources entry of type "github" accepts:
//
//   - owner, repo: the repository (required)
//   - ref: branch, tag or commit SHA. Default: main
//   - content_dir, layouts_dir: repository directories. Default: content, layouts
//   - token_env: environment variable holding a personal access token.
//     Default: GITHUB_TOKEN. Without a token requests are unauthenticated.
//   - base_url: GitHub Enterprise API URL
//   - cache_dir: where binary files are written. Default: tmp/github
//
// # Pulling
//
// Activate lists the recursive tree of ref once. Items and Layouts fetch the
// blobs below their directory and derive identifiers the same way the
// filesystem data source does. Text blobs may carry YAML front matter.
//
// # Rate Limiting
//
// Requests go through a token bucket (about 1.2 requests per second by
// default) and pause until the reset time when X-RateLimit-Remaining drops
// below a small reserve.
package github
