package networks

import (
	"net/http"

	"github.com/iamshubha/roy-dex-sub005/internal/api"
	"github.com/iamshubha/roy-dex-sub005/internal/util"
	"github.com/iamshubha/roy-dex-sub005/internal/wallet/derive"
	"github.com/kat-co/vala"
	"github.com/labstack/echo/v4"
)

type DeriveTypesResponse struct {
	NetworkID        string       `json:"networkId"`
	GlobalDeriveType derive.Type  `json:"globalDeriveType"`
	DeriveTypes      derive.Table `json:"deriveTypes"`
}

type PutGlobalDeriveTypePayload struct {
	DeriveType derive.Type `json:"deriveType"`
}

func (p *PutGlobalDeriveTypePayload) Validate() error {
	return vala.BeginValidation().Validate(
		vala.StringNotEmpty(string(p.DeriveType), "deriveType"),
	).Check()
}

func GetDeriveTypesRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Networks.GET("/:networkId/derive-types", getDeriveTypesHandler(s))
}

func getDeriveTypesHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		res, err := deriveTypes(c, s, c.Param("networkId"))
		if err != nil {
			return err
		}

		return util.ValidateAndReturn(c, http.StatusOK, res)
	}
}

func PutGlobalDeriveTypeRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Networks.PUT("/:networkId/global-derive-type", putGlobalDeriveTypeHandler(s))
}

func putGlobalDeriveTypeHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		networkID := c.Param("networkId")

		var body PutGlobalDeriveTypePayload
		if err := util.BindAndValidateBody(c, &body); err != nil {
			return err
		}

		if err := s.Networks.SetGlobalDeriveType(ctx, networkID, body.DeriveType); err != nil {
			return err
		}

		res, err := deriveTypes(c, s, networkID)
		if err != nil {
			return err
		}

		return util.ValidateAndReturn(c, http.StatusOK, res)
	}
}

func deriveTypes(c echo.Context, s *api.Server, networkID string) (*DeriveTypesResponse, error) {
	ctx := c.Request().Context()

	table, err := s.Networks.GetDeriveInfoMapOfNetwork(ctx, networkID)
	if err != nil {
		return nil, err
	}

	global, err := s.Networks.GetGlobalDeriveTypeOfNetwork(ctx, networkID)
	if err != nil {
		return nil, err
	}

	return &DeriveTypesResponse{
		NetworkID:        networkID,
		GlobalDeriveType: global,
		DeriveTypes:      table,
	}, nil
}
