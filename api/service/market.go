package service

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/photon-storage/go-common/log"

	"github.com/agrisync/agrisync/market"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type marketReq struct {
	Category string `form:"category"`
	Search   string `form:"search"`
}

// Market handles the /market request. Live forecasts are served when the
// prediction service provides them, the bundled table otherwise.
func (s *Service) Market(c *gin.Context, req *marketReq) (*market.Selection, error) {
	sel := s.selectMarket(c)
	sel.Entries = market.Filter(sel.Entries, req.Category, req.Search)
	return &sel, nil
}

// MarketExport handles the /market/export request and downloads the
// selected forecasts as a spreadsheet.
func (s *Service) MarketExport(c *gin.Context, req *marketReq) error {
	sel := s.selectMarket(c)
	entries := market.Filter(sel.Entries, req.Category, req.Search)

	var buf bytes.Buffer
	if err := market.WriteXLSX(&buf, entries); err != nil {
		return err
	}

	c.Header("Content-Disposition", `attachment; filename="market-forecast.xlsx"`)
	c.Header("X-Forecast-Source", string(sel.Source))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
	return nil
}

func (s *Service) selectMarket(c *gin.Context) market.Selection {
	live, err := s.predictor.FetchMarketForecast(c.Request.Context())
	sel := market.Select(live, err)
	if sel.Source == market.SourceStatic {
		log.Info("serve static market forecast",
			"request_id", requestID(c),
			"reason", sel.Reason,
		)
	}

	return sel
}
