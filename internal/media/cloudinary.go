package media

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Cloudinary implements Service against the Cloudinary upload API using
// signed requests.
type Cloudinary struct {
	cloudName string
	apiKey    string
	apiSecret string
	baseURL   string
	client    *http.Client
}

func NewCloudinary(cloudName, apiKey, apiSecret string) *Cloudinary {
	return &Cloudinary{
		cloudName: cloudName,
		apiKey:    apiKey,
		apiSecret: apiSecret,
		baseURL:   "https://api.cloudinary.com/v1_1",
		client:    &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Cloudinary) Upload(image string) (string, error) {
	ts := strconv.FormatInt(time.Now().Unix(), 10)

	form := url.Values{}
	form.Set("file", image)
	form.Set("api_key", c.apiKey)
	form.Set("timestamp", ts)
	form.Set("signature", c.sign("timestamp="+ts))

	resp, err := c.client.PostForm(fmt.Sprintf("%s/%s/image/upload", c.baseURL, c.cloudName), form)
	if err != nil {
		return "", fmt.Errorf("image upload request failed: %v", err)
	}
	defer resp.Body.Close()

	var body struct {
		SecureURL string `json:"secure_url"`
		URL       string `json:"url"`
		Error     struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("image upload response unreadable: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("image upload rejected (%d): %s", resp.StatusCode, body.Error.Message)
	}

	if body.SecureURL != "" {
		return body.SecureURL, nil
	}
	if body.URL == "" {
		return "", fmt.Errorf("image upload returned no URL")
	}
	return body.URL, nil
}

func (c *Cloudinary) Destroy(blobURL string) error {
	publicID := PublicID(blobURL)
	ts := strconv.FormatInt(time.Now().Unix(), 10)

	form := url.Values{}
	form.Set("public_id", publicID)
	form.Set("api_key", c.apiKey)
	form.Set("timestamp", ts)
	form.Set("signature", c.sign("public_id="+publicID+"&timestamp="+ts))

	resp, err := c.client.PostForm(fmt.Sprintf("%s/%s/image/destroy", c.baseURL, c.cloudName), form)
	if err != nil {
		return fmt.Errorf("image destroy request failed: %v", err)
	}
	defer resp.Body.Close()

	var body struct {
		Result string `json:"result"`
		Error  struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("image destroy response unreadable: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("image destroy rejected (%d): %s", resp.StatusCode, body.Error.Message)
	}
	if body.Result != "ok" && body.Result != "not found" {
		return fmt.Errorf("image destroy failed for %s: %s", publicID, body.Result)
	}
	return nil
}

func (c *Cloudinary) sign(params string) string {
	sum := sha1.Sum([]byte(params + c.apiSecret))
	return hex.EncodeToString(sum[:])
}
