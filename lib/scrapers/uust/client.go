package uust

import (
	"context"
	"courseportal-backend/lib/telemetry"
	"fmt"
	"strconv"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
)

// BaseUrl is the legacy server-rendered timetable endpoint. It is
// undocumented: the request/response shape below is observed behavior,
// nothing more.
const BaseUrl = "https://isu.uust.ru/module/schedule/schedule_2024_script.php"

type Client struct {
	http *resty.Client
}

type ClientOptions struct {
	// defaults to BaseUrl
	Url string
	// defaults to 10 seconds
	Timeout time.Duration
}

func NewClient(opts ClientOptions) Client {
	endpoint := opts.Url
	if endpoint == "" {
		endpoint = BaseUrl
	}
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = time.Second * 10
	}

	client := resty.New()
	client.SetBaseURL(endpoint)
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)

	client.SetHeader("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:144.0) Gecko/20100101 Firefox/144.0")
	client.SetHeader("Content-Type", "application/x-www-form-urlencoded; charset=UTF-8")
	client.SetHeader("X-Requested-With", "XMLHttpRequest")
	client.SetTimeout(timeout)

	telemetry.InstrumentResty(client, "scrapers/uust/http")

	return Client{http: client}
}

// FetchWeek performs the single POST for one (group, week) pair and
// returns the raw response body. No retries happen here, retry policy
// belongs to the caller.
func (c Client) FetchWeek(ctx context.Context, groupId int64, week int) (string, error) {
	res, err := c.http.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"week":      strconv.Itoa(week),
			"group_id":  strconv.FormatInt(groupId, 10),
			"funct":     "group",
			"show_temp": "0",
		}).
		Post("")
	if err != nil {
		return "", fmt.Errorf("fetch week %d for group %d: %w", week, groupId, err)
	}
	if res.IsError() {
		return "", fmt.Errorf("fetch week %d for group %d: status %s", week, groupId, res.Status())
	}
	return res.String(), nil
}
