package controller

import (
	"keep-notes-be/internal/dto"
	"keep-notes-be/internal/notestate"
	"keep-notes-be/internal/pkg/serverutils"
	"keep-notes-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type INoteController interface {
	RegisterRoutes(r fiber.Router)
	State(ctx *fiber.Ctx) error
	Dispatch(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	Commit(ctx *fiber.Ctx) error
	ChangeColor(ctx *fiber.Ctx) error
	Toggle(ctx *fiber.Ctx) error
	OpenEditable(ctx *fiber.Ctx) error
	CloseEditable(ctx *fiber.Ctx) error
	EditFields(ctx *fiber.Ctx) error
	Archive(ctx *fiber.Ctx) error
	Unarchive(ctx *fiber.Ctx) error
	CreateLabel(ctx *fiber.Ctx) error
	AddNoteLabel(ctx *fiber.Ctx) error
	DeleteNoteLabel(ctx *fiber.Ctx) error
}

type noteController struct {
	noteService   service.INoteService
	jwtMiddleware fiber.Handler
}

func NewNoteController(noteService service.INoteService, jwtMiddleware fiber.Handler) INoteController {
	return &noteController{
		noteService:   noteService,
		jwtMiddleware: jwtMiddleware,
	}
}

func (c *noteController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/note/v1")
	h.Use(c.jwtMiddleware)
	h.Get("state", c.State)
	h.Post("actions", c.Dispatch)
	h.Post("notes", c.Create)
	h.Post("labels", c.CreateLabel)
	h.Put("editable", c.OpenEditable)
	h.Delete("editable", c.CloseEditable)
	h.Put("editable/fields", c.EditFields)
	h.Put("notes/:id/archive", c.Archive)
	h.Put("archives/:id/unarchive", c.Unarchive)
	h.Put(":noteType/commit", c.Commit)
	h.Put(":noteType/:id/color", c.ChangeColor)
	h.Put(":noteType/:id/toggle/:property", c.Toggle)
	h.Post(":noteType/:id/labels", c.AddNoteLabel)
	h.Delete(":noteType/:id/labels/:label", c.DeleteNoteLabel)
	h.Delete(":noteType/:id", c.Delete)
}

func (c *noteController) State(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserId(ctx)
	if err != nil {
		return err
	}

	res, err := c.noteService.State(ctx.UserContext(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get state", res))
}

func (c *noteController) Dispatch(ctx *fiber.Ctx) error {
	var req dto.DispatchActionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}
	if !req.Type.Known() {
		return fiber.NewError(fiber.StatusBadRequest, "Unknown action type")
	}

	action := req.ToAction()
	if err := service.ValidateActionIds(action); err != nil {
		return err
	}
	return c.dispatch(ctx, action)
}

func (c *noteController) Create(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserId(ctx)
	if err != nil {
		return err
	}

	var req dto.CreateNoteRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.noteService.CreateNote(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}
	return respond(ctx, "Success create note", res)
}

func (c *noteController) Delete(ctx *fiber.Ctx) error {
	noteType, err := noteTypeParam(ctx)
	if err != nil {
		return err
	}
	return c.dispatch(ctx, notestate.DeleteNote(noteType, ctx.Params("id")))
}

func (c *noteController) Commit(ctx *fiber.Ctx) error {
	noteType, err := noteTypeParam(ctx)
	if err != nil {
		return err
	}
	return c.dispatch(ctx, notestate.UpdateNote(noteType))
}

func (c *noteController) ChangeColor(ctx *fiber.Ctx) error {
	noteType, err := noteTypeParam(ctx)
	if err != nil {
		return err
	}

	var req dto.ChangeNoteColorRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	return c.dispatch(ctx, notestate.ChangeNoteColor(noteType, ctx.Params("id"), req.BgColor))
}

func (c *noteController) Toggle(ctx *fiber.Ctx) error {
	noteType, err := noteTypeParam(ctx)
	if err != nil {
		return err
	}
	property := notestate.Property(ctx.Params("property"))
	return c.dispatch(ctx, notestate.ToggleNoteProperty(noteType, ctx.Params("id"), property))
}

func (c *noteController) OpenEditable(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserId(ctx)
	if err != nil {
		return err
	}

	var req dto.OpenEditableNoteRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.noteService.OpenEditableNote(ctx.UserContext(), userId, req.Id)
	if err != nil {
		return err
	}
	return respond(ctx, "Success open note", res)
}

func (c *noteController) CloseEditable(ctx *fiber.Ctx) error {
	return c.dispatch(ctx, notestate.ClearEditableNote())
}

func (c *noteController) EditFields(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserId(ctx)
	if err != nil {
		return err
	}

	var req dto.EditBufferRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.noteService.EditBuffer(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}
	return respond(ctx, "Success edit note", res)
}

func (c *noteController) Archive(ctx *fiber.Ctx) error {
	return c.dispatch(ctx, notestate.ArchiveNote(ctx.Params("id")))
}

func (c *noteController) Unarchive(ctx *fiber.Ctx) error {
	return c.dispatch(ctx, notestate.UnarchiveNote(ctx.Params("id")))
}

func (c *noteController) CreateLabel(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserId(ctx)
	if err != nil {
		return err
	}

	var req dto.CreateLabelRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.noteService.CreateLabel(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}
	return respond(ctx, "Success create label", res)
}

func (c *noteController) AddNoteLabel(ctx *fiber.Ctx) error {
	noteType, err := noteTypeParam(ctx)
	if err != nil {
		return err
	}

	var req dto.NoteLabelRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	return c.dispatch(ctx, notestate.AddNoteLabel(noteType, ctx.Params("id"), req.LabelId))
}

func (c *noteController) DeleteNoteLabel(ctx *fiber.Ctx) error {
	noteType, err := noteTypeParam(ctx)
	if err != nil {
		return err
	}
	return c.dispatch(ctx, notestate.DeleteNoteLabel(noteType, ctx.Params("id"), ctx.Params("label")))
}

func (c *noteController) dispatch(ctx *fiber.Ctx, action notestate.Action) error {
	userId, err := serverutils.UserId(ctx)
	if err != nil {
		return err
	}

	res, err := c.noteService.Dispatch(ctx.UserContext(), userId, action)
	if err != nil {
		return err
	}
	return respond(ctx, "Success "+string(action.Type), res)
}

// respond answers 200 for applied and missed transitions; a lookup miss is
// not an error. Rejected actions answer 422 with the unchanged state.
func respond(ctx *fiber.Ctx, message string, res *dto.DispatchResponse) error {
	if res.Outcome == notestate.Rejected {
		return ctx.Status(fiber.StatusUnprocessableEntity).JSON(&serverutils.BaseResponse[*dto.DispatchResponse]{
			Success: false,
			Code:    fiber.StatusUnprocessableEntity,
			Message: "Action rejected",
			Data:    res,
		})
	}
	return ctx.JSON(serverutils.SuccessResponse(message, res))
}

func noteTypeParam(ctx *fiber.Ctx) (notestate.NoteType, error) {
	noteType, err := notestate.ParseNoteType(ctx.Params("noteType"))
	if err != nil {
		return "", fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return noteType, nil
}
