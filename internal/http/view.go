package http

import (
	"github.com/gin-gonic/gin"
	"github.com/guttosm/picking-service/internal/domain/dto"
	"github.com/guttosm/picking-service/internal/domain/model"
	"github.com/guttosm/picking-service/internal/i18n"
	"github.com/guttosm/picking-service/internal/service"
)

// newPickingView renders a session state for the client, translating the
// notifications to the request locale.
func newPickingView(c *gin.Context, res *service.PickingResult) dto.PickingView {
	v := res.View
	view := dto.PickingView{
		Picking:           v.Picking,
		Pages:             make([]dto.PageView, 0, len(v.Pages)),
		PageIndex:         v.PageIndex,
		Lines:             v.Lines,
		Selected:          v.Selected,
		SourceID:          v.SourceID,
		DestinationID:     v.DestinationID,
		HighlightValidate: v.HighlightValidate,
		HighlightNext:     v.HighlightNext,
		Dirty:             v.Dirty,
		Notifications:     translateNotifications(c, res),
		LineID:            res.LineID,
	}
	if view.Lines == nil {
		view.Lines = []model.Line{}
	}

	for _, p := range v.Pages {
		view.Pages = append(view.Pages, dto.PageView{
			LocationID:     p.Key.LocationID,
			LocationDestID: p.Key.LocationDestID,
			Group:          p.Key.Group,
			LineCount:      len(p.Lines),
		})
	}

	for _, g := range v.PackageGroups {
		view.PackageGroups = append(view.PackageGroups, dto.PackageGroupView{
			PackageID:    g.PackageID,
			Name:         g.Name,
			LineCount:    len(g.Lines),
			QtyDone:      g.QtyDone,
			FullyScanned: g.FullyScanned,
		})
	}

	if v.Action != nil {
		view.Action = &dto.ActionView{
			Type:    v.Action.Type,
			Name:    v.Action.Name,
			Context: v.Action.Context,
		}
	}

	return view
}

func translateNotifications(c *gin.Context, res *service.PickingResult) []dto.NotificationView {
	locale := i18n.GetLocale(c)
	translator := i18n.GetTranslator()

	out := make([]dto.NotificationView, 0, len(res.Notifications))
	for _, n := range res.Notifications {
		out = append(out, dto.NotificationView{
			Type:    string(n.Type),
			Key:     n.Key,
			Message: translator.Format(n.Key, locale, n.Args),
			Args:    n.Args,
		})
	}
	return out
}
