// Package catalog adapts third-party YouTube libraries to the model: it
// fetches a video's ordered stream catalog and transfers one stream to disk.
//
// Two backends are available: "youtube" (github.com/kkdai/youtube/v2) and
// "ytdlp" (github.com/ytget/ytdlp/v2).
package catalog
