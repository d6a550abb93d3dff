package client

import (
	"encoding/json"
	"fmt"
	"net/url"

	"turfbook/pkg/model"
)

type BlockedSlotClient struct {
	httpClient *HttpClient
}

func NewBlockedSlotClient(baseUrl string) *BlockedSlotClient {
	return &BlockedSlotClient{
		httpClient: NewHttpClient(baseUrl),
	}
}

func (c *BlockedSlotClient) Create(body any) (*Response, error) {
	return c.httpClient.POST("/api/v1/blocked-slots", body)
}

func (c *BlockedSlotClient) List(turfID string, date string, limit int, offset int64) (*Response, error) {
	q := url.Values{}
	if turfID != "" {
		q.Set("turf_id", turfID)
	}
	if date != "" {
		q.Set("date", date)
	}
	q.Set("limit", fmt.Sprintf("%d", limit))
	q.Set("offset", fmt.Sprintf("%d", offset))

	path := "/api/v1/blocked-slots?" + q.Encode()
	return c.httpClient.GET(path)
}

func (c *BlockedSlotClient) Delete(id string) (*Response, error) {
	path := "/api/v1/blocked-slots/id/" + url.PathEscape(id)
	return c.httpClient.DELETE(path)
}

func (c *BlockedSlotClient) DecodeBlockedSlot(resp *Response) (*model.BlockedSlot, error) {
	var wrapper struct {
		Data json.RawMessage `json:"data"`
	}

	if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
		return nil, fmt.Errorf("could not decode blocked slot wrapper:\n%+v\n%s", resp.ToString(), err)
	}

	var slot model.BlockedSlot
	if err := json.Unmarshal(wrapper.Data, &slot); err != nil {
		return nil, fmt.Errorf("could not decode blocked slot json:\n%+v\n%s", resp.ToString(), err)
	}

	return &slot, nil
}
