package kintone

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"dispatchboard/entity"
)

// AppCredentials identifies one kintone app and its API token.
type AppCredentials struct {
	AppID string
	Token string
}

func (a AppCredentials) ok() bool { return a.AppID != "" && a.Token != "" }

// Config holds the connection settings for the record backend. BaseURL is
// derived from Subdomain when empty (tests point it at a local server).
type Config struct {
	Subdomain string
	BaseURL   string
	Driver    AppCredentials
	Truck     AppCredentials
	Chassis   AppCredentials
	Container AppCredentials
}

// ErrMissingCredentials means the app id or token for a collaborator is not
// configured. Only that collaborator's calls fail; the board stays usable.
var ErrMissingCredentials = errors.New("kintone: missing app id or api token")

// Client talks to the kintone record backend (drivers, trucks, chassis,
// containers). All methods are safe for concurrent use.
type Client struct {
	baseURL string
	cfg     Config
	http    *http.Client
}

func New(cfg Config) *Client {
	base := cfg.BaseURL
	if base == "" {
		base = fmt.Sprintf("https://%s.cybozu.com/k/v1", cfg.Subdomain)
	}
	return &Client{
		baseURL: strings.TrimRight(base, "/"),
		cfg:     cfg,
		http:    &http.Client{Timeout: 20 * time.Second},
	}
}

// record is one kintone row: field code -> {"value": ...}.
type record map[string]struct {
	Value any `json:"value"`
}

func (r record) str(field string) string {
	v, ok := r[field]
	if !ok || v.Value == nil {
		return ""
	}
	if s, ok := v.Value.(string); ok {
		return s
	}
	return fmt.Sprint(v.Value)
}

func (r record) id() string { return r.str("$id") }

func (c *Client) getRecords(ctx context.Context, creds AppCredentials, query string) ([]record, error) {
	if c.cfg.Subdomain == "" && c.cfg.BaseURL == "" || !creds.ok() {
		return nil, ErrMissingCredentials
	}
	q := url.Values{}
	q.Set("app", creds.AppID)
	q.Set("query", query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/records.json?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Cybozu-API-Token", creds.Token)

	res, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 2048))
		return nil, fmt.Errorf("kintone: get records status %d: %s", res.StatusCode, body)
	}

	var payload struct {
		Records []record `json:"records"`
	}
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return nil, err
	}
	return payload.Records, nil
}

// updateRecords flips a flag field to 済 on the given record ids.
func (c *Client) updateRecords(ctx context.Context, creds AppCredentials, ids []string, flagField string) error {
	type flagValue struct {
		Value []string `json:"value"`
	}
	type rowUpdate struct {
		ID     string               `json:"id"`
		Record map[string]flagValue `json:"record"`
	}
	body := struct {
		App     string      `json:"app"`
		Records []rowUpdate `json:"records"`
	}{App: creds.AppID}
	for _, id := range ids {
		body.Records = append(body.Records, rowUpdate{
			ID:     id,
			Record: map[string]flagValue{flagField: {Value: []string{"済"}}},
		})
	}

	raw, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.baseURL+"/records.json", bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("X-Cybozu-API-Token", creds.Token)
	req.Header.Set("Content-Type", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		out, _ := io.ReadAll(io.LimitReader(res.Body, 2048))
		return fmt.Errorf("kintone: update records status %d: %s", res.StatusCode, out)
	}
	return nil
}

// FetchDrivers returns the active (在籍) drivers, called once per board session.
func (c *Client) FetchDrivers(ctx context.Context) ([]entity.Driver, error) {
	records, err := c.getRecords(ctx, c.cfg.Driver, `ドライバー_状態 in ("在籍") order by ドライバー_略称 asc`)
	if err != nil {
		return nil, err
	}
	drivers := make([]entity.Driver, 0, len(records))
	for _, r := range records {
		drivers = append(drivers, entity.Driver{
			ID:          r.id(),
			Name:        r.str("ドライバー_略称"),
			Email:       r.str("ドライバー_メール"),
			BaseTruckNo: strings.TrimSpace(r.str("ドライバー_車両")),
			Kind:        driverKind(r.str("ドライバー_区分")),
			GroupName:   strings.TrimSpace(r.str("ドライバー_グループ")),
		})
	}
	return drivers, nil
}

// FetchTrucks returns the in-service (稼働) vehicles, all in the spare pool.
func (c *Client) FetchTrucks(ctx context.Context) ([]entity.Truck, error) {
	records, err := c.getRecords(ctx, c.cfg.Truck, `車両_状態 in ("稼働") order by 車両_番号 asc`)
	if err != nil {
		return nil, err
	}
	trucks := make([]entity.Truck, 0, len(records))
	for _, r := range records {
		trucks = append(trucks, entity.Truck{
			ID:       r.id(),
			Label:    r.str("車両_番号"),
			CarNo:    r.str("車両_車番"),
			Location: entity.SpareLocation(),
		})
	}
	return trucks, nil
}

// FetchChassis returns every chassis that is not scrapped, parked in the
// overflow pool by default.
func (c *Client) FetchChassis(ctx context.Context) ([]entity.ChassisGroup, error) {
	records, err := c.getRecords(ctx, c.cfg.Chassis, `シャーシ_状態 in ("稼働","修理") order by シャーシ_番号 asc`)
	if err != nil {
		return nil, err
	}
	groups := make([]entity.ChassisGroup, 0, len(records))
	for _, r := range records {
		sizeRaw := r.str("シャーシ_サイズ")
		kindRaw := r.str("シャーシ_種別")
		groups = append(groups, entity.ChassisGroup{
			ID:           r.id(),
			ChassisLabel: r.str("シャーシ_番号"),
			Size:         chassisSize(sizeRaw),
			Axle:         chassisAxle(kindRaw),
			Location:     entity.PoolLocation(entity.OverflowYardID, entity.SingleLaneID, entity.PosFront),
			Extra: entity.ChassisExtra{
				CarNo:     r.str("シャーシ_車番"),
				SizeLabel: sizeRaw,
				KindLabel: kindRaw,
				Note:      r.str("シャーシ_備考"),
			},
		})
	}
	return groups, nil
}

// FetchNewContainers returns container rows not yet delivered to a board
// (配車_連携 = 未) and marks the returned ones as consumed. Rows whose
// destination carries an exclusion keyword are neither returned nor marked.
func (c *Client) FetchNewContainers(ctx context.Context) ([]entity.Container, error) {
	query := `配車_連携 in ("未")` +
		` and 配送先_配送依頼 not like "FEEDER"` +
		` and 配送先_配送依頼 not like "POSITION"` +
		` order by 配送日 asc`
	records, err := c.getRecords(ctx, c.cfg.Container, query)
	if err != nil {
		return nil, err
	}

	var containers []entity.Container
	var consumed []string
	for _, r := range records {
		if SkipDestination(r.str("配送先_配送依頼")) {
			continue
		}
		pickupYard := r.str("搬出")
		dropoff := strings.TrimSpace(r.str("搬入_配車上書き"))
		if dropoff == "" {
			dropoff = strings.TrimSpace(r.str("搬入"))
		}
		containers = append(containers, entity.Container{
			ID:              r.id(),
			Size:            containerSize(r.str("サイズ")),
			Date:            dateKey(r.str("配送日")),
			ETA:             r.str("着時間0"),
			PickupYard:      pickupYard,
			PickupYardGroup: ResolvePickupYardGroup(pickupYard),
			DropoffYard:     dropoff,
			Destination:     StripCompanyTokens(r.str("配送先_配送依頼")),
			DestAddress:     r.str("配送先住所"),
			DestPhone:       r.str("連絡先電話番号"),
			No:              r.str("コンテナ番号_配送依頼"),
			Ship:            r.str("本船名_配送依頼"),
			Booking:         r.str("BL_BK"),
			KindCode:        r.str("種類"),
		})
		consumed = append(consumed, r.id())
	}
	if len(consumed) == 0 {
		return nil, nil
	}
	if err := c.updateRecords(ctx, c.cfg.Container, consumed, "配車_連携"); err != nil {
		return nil, err
	}
	return containers, nil
}

// FetchContainerPatches returns unacknowledged workflow updates (配車_更新 = 未)
// and acknowledges only the rows it returns. Rows with no workflow step are
// left unacknowledged: they have not actually been populated yet.
func (c *Client) FetchContainerPatches(ctx context.Context) ([]entity.ContainerPatch, error) {
	records, err := c.getRecords(ctx, c.cfg.Container, `配車_更新 in ("未") order by 更新日時 asc`)
	if err != nil {
		return nil, err
	}

	var patches []entity.ContainerPatch
	var acked []string
	for _, r := range records {
		stepRaw := strings.TrimSpace(r.str("配車_工程"))
		if stepRaw == "" {
			continue
		}
		n, err := strconv.Atoi(stepRaw)
		if err != nil {
			continue
		}
		step := entity.ContainerStep(n)

		dropoff := strings.TrimSpace(r.str("搬入_配車上書き"))
		if dropoff == "" {
			dropoff = strings.TrimSpace(r.str("搬入"))
		}
		patches = append(patches, entity.ContainerPatch{
			ID:          r.id(),
			No:          r.str("コンテナ番号_配送依頼"),
			DropoffYard: dropoff,
			Step:        &step,
			Worker4:     strings.TrimSpace(r.str("作業者_4")),
		})
		acked = append(acked, r.id())
	}
	if len(acked) == 0 {
		return nil, nil
	}
	if err := c.updateRecords(ctx, c.cfg.Container, acked, "配車_更新"); err != nil {
		return nil, err
	}
	return patches, nil
}
