package middleware

import (
	"net/http"

	"github.com/justishika/DevSecOps-SweetSpot/internal/domain/model"

	"github.com/labstack/echo/v4"
)

//contextに入っているroleがvendorかどうかを確認する。

func VendorRoleGuard() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rawRole := c.Get(CtxUserRoleKey)
			role, ok := rawRole.(string)
			if !ok || role == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			//customerは拒否、vendorだけ許可
			if role != string(model.RoleVendor) {
				return c.JSON(http.StatusForbidden, errorJSON("vendor only"))
			}

			return next(c)
		}
	}
}
