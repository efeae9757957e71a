// Package client speaks the SwissTransfer wire protocol.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface) covering
//     every remote call: CreateContainer, UploadChunk, CompleteUpload,
//     GetLink, GenerateDownloadToken and OpenDownload.
//  2. A concrete implementation (see SwissTransferClient) on top of
//     netx.Transport that builds the exact request shapes, URL layouts and
//     JSON payloads the service expects, and maps status codes and message
//     fields to the errors in package common.
//  3. Share-link helpers (ParseShareLink, BuildShareLink).
//
// # Error Handling
//
// Non-2xx responses become *common.StatusError, malformed bodies
// *common.DecodeError, and connection failures *common.TransportError.
// Link gating is reported with common.ErrPasswordRequired,
// common.ErrInvalidPassword and common.ErrScanPending; a 500 on a download
// is reported as common.ErrDownloadNumberExceeded.
//
// Concurrency & Contexts
//
// SwissTransferClient holds no per-call state and is safe for concurrent
// use. All operations accept context.Context and honor cancellation.
package client
