// Package media talks to the external blob host. Image fields on incoming
// payloads hold either a raw encoded image (new upload) or an existing blob
// URL; the helpers here sort one from the other, upload the new ones as a
// concurrent batch and reclaim superseded blobs best effort.
package media

import (
	"log"
	"strings"
	"sync"
)

// Service is the blob-store contract: upload a payload for a durable URL,
// destroy a blob by the URL it was served under. Injected into every
// mutation workflow so tests can substitute a double.
type Service interface {
	Upload(image string) (string, error)
	Destroy(url string) error
}

// IsRemote reports whether the value is already a blob URL rather than a raw
// payload. Callers distinguish the two by URL-prefix sniffing.
func IsRemote(image string) bool {
	return strings.HasPrefix(image, "http")
}

// PublicID derives the blob identifier from its URL: last path segment minus
// the file extension.
func PublicID(url string) string {
	parts := strings.Split(url, "/")
	last := parts[len(parts)-1]
	if i := strings.LastIndex(last, "."); i >= 0 {
		last = last[:i]
	}
	return last
}

// UploadAll uploads every payload concurrently and waits for the whole
// batch. If any upload fails the batch fails as one unit.
func UploadAll(svc Service, images []string) ([]string, error) {
	urls := make([]string, len(images))
	errs := make([]error, len(images))

	var wg sync.WaitGroup
	for i, img := range images {
		wg.Add(1)
		go func(i int, img string) {
			defer wg.Done()
			urls[i], errs[i] = svc.Upload(img)
		}(i, img)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return urls, nil
}

// ResolveAll keeps values that are already blob URLs and uploads the rest,
// preserving order. Existing URLs are never re-uploaded.
func ResolveAll(svc Service, images []string) ([]string, error) {
	out := make([]string, len(images))

	var idx []int
	var raw []string
	for i, img := range images {
		if IsRemote(img) {
			out[i] = img
			continue
		}
		idx = append(idx, i)
		raw = append(raw, img)
	}

	urls, err := UploadAll(svc, raw)
	if err != nil {
		return nil, err
	}
	for j, i := range idx {
		out[i] = urls[j]
	}
	return out, nil
}

// ResolveOne uploads a single image unless it is empty or already a URL.
func ResolveOne(svc Service, image string) (string, error) {
	if image == "" || IsRemote(image) {
		return image, nil
	}
	return svc.Upload(image)
}

// Superseded returns the URLs present in old but absent from next; those
// blobs are no longer referenced and can be reclaimed.
func Superseded(old, next []string) []string {
	var gone []string
	for _, u := range old {
		if u == "" {
			continue
		}
		found := false
		for _, n := range next {
			if n == u {
				found = true
				break
			}
		}
		if !found {
			gone = append(gone, u)
		}
	}
	return gone
}

// DestroyAll releases every given blob. Cleanup is best effort: a failure is
// logged and never turns a committed operation into an error, which can
// leave orphaned blobs behind.
func DestroyAll(svc Service, urls []string) {
	for _, u := range urls {
		if u == "" || !IsRemote(u) {
			continue
		}
		if err := svc.Destroy(u); err != nil {
			log.Printf("blob cleanup failed for %s: %v", u, err)
		}
	}
}
