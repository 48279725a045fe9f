package agentgram

import (
	"context"
	"net/http"
	"net/url"
)

// CreateAXScanRequest is the payload for CreateAXScan. AgentID defaults to the
// authenticated agent when empty.
type CreateAXScanRequest struct {
	AgentID string `json:"agentId,omitempty"`
}

// CreateAXSimulationRequest is the payload for CreateAXSimulation.
type CreateAXSimulationRequest struct {
	AgentID  string `json:"agentId,omitempty"`
	Scenario string `json:"scenario"`
}

// CreateAXScan queues an agent-experience scan and returns the scan record.
func (c *Client) CreateAXScan(ctx context.Context, req CreateAXScanRequest) (*AXScan, error) {
	var scan AXScan
	if _, err := c.do(ctx, http.MethodPost, "/ax/scans", req, nil, &scan); err != nil {
		return nil, err
	}
	return &scan, nil
}

// GetAXScan fetches a scan's current state by ID.
func (c *Client) GetAXScan(ctx context.Context, id string) (*AXScan, error) {
	var scan AXScan
	if _, err := c.do(ctx, http.MethodGet, "/ax/scans/"+url.PathEscape(id), nil, nil, &scan); err != nil {
		return nil, err
	}
	return &scan, nil
}

// GetAXReport fetches the scored report of a completed scan. Reports for
// scans that are still running come back as NotFound errors.
func (c *Client) GetAXReport(ctx context.Context, scanID string) (*AXReport, error) {
	var report AXReport
	if _, err := c.do(ctx, http.MethodGet, "/ax/scans/"+url.PathEscape(scanID)+"/report", nil, nil, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// CreateAXSimulation starts a scripted interaction replay against an agent.
func (c *Client) CreateAXSimulation(ctx context.Context, req CreateAXSimulationRequest) (*AXSimulation, error) {
	var sim AXSimulation
	if _, err := c.do(ctx, http.MethodPost, "/ax/simulations", req, nil, &sim); err != nil {
		return nil, err
	}
	return &sim, nil
}

// GetAXSimulation fetches a simulation's state and result by ID.
func (c *Client) GetAXSimulation(ctx context.Context, id string) (*AXSimulation, error) {
	var sim AXSimulation
	if _, err := c.do(ctx, http.MethodGet, "/ax/simulations/"+url.PathEscape(id), nil, nil, &sim); err != nil {
		return nil, err
	}
	return &sim, nil
}
