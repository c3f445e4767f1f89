// Package navex integrates the Navex courier HTTP API. Navex is a Tunisian
// last-mile vendor with strong coverage of the southern governorates; its API
// speaks French and returns shipment payloads in two shapes depending on the
// endpoint generation (bare array or wrapped object), both handled here.
package navex

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"dispatch/internal/core/domain/model/carrier"
	"dispatch/internal/core/domain/model/geo"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"go.uber.org/zap"
)

const vendorName = "navex"

// phoneDigits is the local subscriber-number length Navex expects.
const phoneDigits = 8

// Adapter drives the Navex HTTP API for one merchant's credentials.
type Adapter struct {
	creds     carrier.NavexCredentials
	client    *http.Client
	directory *geo.Directory
	log       *zap.Logger
}

// NewAdapter creates a Navex adapter bound to the given credentials.
func NewAdapter(
	creds carrier.NavexCredentials,
	client *http.Client,
	directory *geo.Directory,
	log *zap.Logger,
) (*Adapter, error) {
	if err := creds.Validate(); err != nil {
		return nil, errs.NewConfigurationErrorWithCause("navex credentials are incomplete", err)
	}
	return &Adapter{
		creds:     creds,
		client:    client,
		directory: directory,
		log:       log,
	}, nil
}

type createRequest struct {
	Prenom        string  `json:"prenom"`
	Nom           string  `json:"nom"`
	Telephone     string  `json:"telephone"`
	Adresse       string  `json:"adresse"`
	GouvernoratID int     `json:"gouvernorat_id"`
	Designation   string  `json:"designation"`
	NombrePiece   int     `json:"nombre_piece"`
	Poids         float64 `json:"poids"`
	COD           float64 `json:"cod"`
}

type createItem struct {
	CodeBarre     string   `json:"code_barre"`
	LienBordereau string   `json:"lien_bordereau"`
	PrixLivraison *float64 `json:"prix_livraison"`
}

type wrappedResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// CreateShipment registers the order with Navex. Failures are folded into
// the result; callers inspect Err for the typed cause.
func (a *Adapter) CreateShipment(ctx context.Context, aggregate *order.Order) ports.ShipmentResult {
	payload := createRequest{
		Telephone:     LocalizePhone(aggregate.RecipientPhone()),
		Adresse:       aggregate.AddressLine(),
		GouvernoratID: int(a.directory.ResolveID(aggregate.DestinationArea())),
		Designation:   aggregate.Notes(),
		NombrePiece:   aggregate.Pieces(),
		Poids:         aggregate.WeightKg(),
		COD:           aggregate.CODAmount(),
	}
	payload.Prenom, payload.Nom = SplitName(aggregate.RecipientName())

	body, err := a.post(ctx, "/api/v1/colis", payload)
	if err != nil {
		return ports.ShipmentResult{Err: err}
	}

	item, err := parseCreateResponse(body)
	if err != nil {
		return ports.ShipmentResult{Err: err}
	}

	a.log.Info("navex shipment created",
		zap.String("order_id", aggregate.ID().String()),
		zap.String("code_barre", item.CodeBarre),
	)

	return ports.ShipmentResult{
		Success:            true,
		ExternalTrackingID: item.CodeBarre,
		LabelRef:           item.LienBordereau,
		CostEstimate:       item.PrixLivraison,
	}
}

type trackingItem struct {
	Statut       string `json:"statut"`
	Localisation string `json:"localisation"`
	Date         string `json:"date"`
}

// GetTrackingStatus fetches the most recent status Navex reports for a
// shipment. Older endpoint generations return the full event array; newer
// ones wrap a single current-state object.
func (a *Adapter) GetTrackingStatus(ctx context.Context, externalID string) (ports.TrackingUpdate, error) {
	body, err := a.get(ctx, "/api/v1/colis/"+externalID+"/statut")
	if err != nil {
		return ports.TrackingUpdate{}, err
	}

	item, err := parseTrackingResponse(body)
	if err != nil {
		return ports.TrackingUpdate{}, err
	}

	return ports.TrackingUpdate{
		RawStatus:  item.Statut,
		Location:   item.Localisation,
		OccurredAt: parseVendorTime(item.Date),
	}, nil
}

// CancelShipment asks Navex to cancel the shipment. Navex refuses once the
// parcel is on a vehicle; that refusal surfaces as a VendorRejectionError.
func (a *Adapter) CancelShipment(ctx context.Context, externalID string) error {
	_, err := a.post(ctx, "/api/v1/colis/"+externalID+"/annulation", struct{}{})
	return err
}

// FetchLabel downloads the bordereau PDF for a shipment.
func (a *Adapter) FetchLabel(ctx context.Context, externalID string) ([]byte, error) {
	body, err := a.get(ctx, "/api/v1/colis/"+externalID+"/bordereau")
	if err != nil {
		return nil, err
	}
	if len(body) == 0 {
		return nil, errs.NewVendorRejectionError(vendorName, "response carried no label")
	}
	return body, nil
}

// CheckCredentials verifies the API key with an account lookup.
func (a *Adapter) CheckCredentials(ctx context.Context) error {
	_, err := a.get(ctx, "/api/v1/compte")
	return err
}

type rateRequest struct {
	GouvernoratID int     `json:"gouvernorat_id"`
	Poids         float64 `json:"poids"`
	COD           float64 `json:"cod"`
}

type rateItem struct {
	Prix float64 `json:"prix"`
}

// QuoteRate prices the shipment without creating it.
func (a *Adapter) QuoteRate(ctx context.Context, aggregate *order.Order) (float64, error) {
	payload := rateRequest{
		GouvernoratID: int(a.directory.ResolveID(aggregate.DestinationArea())),
		Poids:         aggregate.WeightKg(),
		COD:           aggregate.CODAmount(),
	}

	body, err := a.post(ctx, "/api/v1/tarif", payload)
	if err != nil {
		return 0, err
	}

	var item rateItem
	if err = decodePayload(body, &item); err != nil {
		return 0, err
	}
	return item.Prix, nil
}

func (a *Adapter) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.creds.BaseURL+path, nil)
	if err != nil {
		return nil, errs.NewTransportError(vendorName, err)
	}
	return a.do(req)
}

func (a *Adapter) post(ctx context.Context, path string, payload any) ([]byte, error) {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, errs.NewTransportError(vendorName, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.creds.BaseURL+path, bytes.NewReader(encoded))
	if err != nil {
		return nil, errs.NewTransportError(vendorName, err)
	}
	req.Header.Set("Content-Type", "application/json")
	return a.do(req)
}

func (a *Adapter) do(req *http.Request) ([]byte, error) {
	req.Header.Set("Authorization", "Bearer "+a.creds.APIKey)

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, errs.NewTransportError(vendorName, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errs.NewTransportError(vendorName, err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, errs.NewConfigurationError("navex rejected the api key")
	case resp.StatusCode >= 400:
		return nil, errs.NewVendorRejectionError(vendorName, vendorMessage(body, resp.StatusCode))
	}

	return body, nil
}

// vendorMessage extracts the vendor's own wording from an error body so the
// merchant sees what Navex said, not a generic status code.
func vendorMessage(body []byte, statusCode int) string {
	var wrapped wrappedResponse
	if err := json.Unmarshal(body, &wrapped); err == nil && wrapped.Message != "" {
		return wrapped.Message
	}
	return fmt.Sprintf("http status %d", statusCode)
}

func parseCreateResponse(body []byte) (createItem, error) {
	var items []createItem
	if err := decodePayload(body, &items); err == nil && len(items) > 0 {
		return validatedCreateItem(items[0])
	}

	var item createItem
	if err := decodePayload(body, &item); err != nil {
		return createItem{}, err
	}
	return validatedCreateItem(item)
}

func validatedCreateItem(item createItem) (createItem, error) {
	if item.CodeBarre == "" {
		return createItem{}, errs.NewVendorRejectionError(vendorName, "response carried no tracking code")
	}
	return item, nil
}

func parseTrackingResponse(body []byte) (trackingItem, error) {
	var items []trackingItem
	if err := decodePayload(body, &items); err == nil && len(items) > 0 {
		// The array is chronological; the last entry is current.
		return items[len(items)-1], nil
	}

	var item trackingItem
	if err := decodePayload(body, &item); err != nil {
		return trackingItem{}, err
	}
	if item.Statut == "" {
		return trackingItem{}, errs.NewVendorRejectionError(vendorName, "response carried no status")
	}
	return item, nil
}

// decodePayload unmarshals either a bare payload or the wrapped
// {success, message, data} envelope into out.
func decodePayload(body []byte, out any) error {
	var wrapped wrappedResponse
	if err := json.Unmarshal(body, &wrapped); err == nil && len(wrapped.Data) > 0 {
		body = wrapped.Data
	}

	if err := json.Unmarshal(body, out); err != nil {
		return errs.NewTransportError(vendorName, fmt.Errorf("undecodable response: %w", err))
	}
	return nil
}

func parseVendorTime(raw string) time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05"} {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts
		}
	}
	return time.Now()
}

// SplitName splits a full recipient name into the vendor's first/last pair:
// the first token is the first name, the remainder the last name. Single
// token names yield an empty last name.
func SplitName(full string) (string, string) {
	fields := strings.Fields(full)
	if len(fields) == 0 {
		return "", ""
	}
	return fields[0], strings.Join(fields[1:], " ")
}

// LocalizePhone reformats a phone number to the local format Navex expects:
// separators and the +216/00216 country prefix are stripped, and short
// numbers are left-padded with zeros to eight digits.
func LocalizePhone(phone string) string {
	var digits strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}

	local := digits.String()
	switch {
	case strings.HasPrefix(local, "00216"):
		local = local[5:]
	case strings.HasPrefix(local, "216") && len(local) > phoneDigits:
		local = local[3:]
	}

	for len(local) < phoneDigits {
		local = "0" + local
	}
	return local
}
