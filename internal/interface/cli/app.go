package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/HenriqueSydney/03-marketspace/internal/domain/product"
	"github.com/HenriqueSydney/03-marketspace/internal/infra/api"
	"github.com/HenriqueSydney/03-marketspace/internal/usecase/advert"
	"github.com/HenriqueSydney/03-marketspace/internal/usecase/auth"
	"github.com/HenriqueSydney/03-marketspace/internal/usecase/catalog"
	"github.com/HenriqueSydney/03-marketspace/internal/usecase/filter"
)

// App is the terminal presentation layer. It owns user-facing messaging;
// the services underneath propagate errors untouched.
type App struct {
	out    io.Writer
	client *api.Client
	store  *catalog.Store
	flow   *advert.Flow
	auth   *auth.Service
	modal  *filter.Modal
}

type Dependencies struct {
	Out    io.Writer
	Client *api.Client
	Store  *catalog.Store
	Flow   *advert.Flow
	Auth   *auth.Service
	Modal  *filter.Modal
}

func NewApp(deps Dependencies) *App {
	return &App{
		out:    deps.Out,
		client: deps.Client,
		store:  deps.Store,
		flow:   deps.Flow,
		auth:   deps.Auth,
		modal:  deps.Modal,
	}
}

func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.usage()
		return nil
	}

	switch args[0] {
	case "login":
		return a.runLogin(ctx, args[1:])
	case "signup":
		return a.runSignUp(ctx, args[1:])
	case "logout":
		return a.runLogout()
	case "browse":
		return a.runBrowse(ctx, args[1:])
	case "my-ads":
		return a.runMyAds(ctx, args[1:])
	case "show":
		return a.runShow(ctx, args[1:])
	case "publish":
		return a.runPublish(ctx, args[1:])
	case "activate":
		return a.runActivate(ctx, args[1:])
	case "remove":
		return a.runRemove(ctx, args[1:])
	default:
		a.usage()
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func (a *App) usage() {
	fmt.Fprintln(a.out, "marketspace <command>")
	fmt.Fprintln(a.out, "  login    -email -password")
	fmt.Fprintln(a.out, "  signup   -name -email -tel -password -avatar")
	fmt.Fprintln(a.out, "  logout")
	fmt.Fprintln(a.out, "  browse   [-query] [-condition new|used] [-trade] [-payments pix,card]")
	fmt.Fprintln(a.out, "  my-ads   [-filter all|actives|activesAndNew|activeAndUsed|deactivate]")
	fmt.Fprintln(a.out, "  show     -id")
	fmt.Fprintln(a.out, "  publish  -id -name -description -condition -price -payments [-trade] [-photos a.jpg,b.jpg]")
	fmt.Fprintln(a.out, "  activate -id")
	fmt.Fprintln(a.out, "  remove   -id")
}

// fail wraps a service error with the user-facing message: the backend's
// own message when it sent one, the generic fallback otherwise.
func (a *App) fail(err error, fallback string) error {
	var appErr *api.AppError
	if errors.As(err, &appErr) {
		fmt.Fprintln(a.out, appErr.Message)
	} else {
		fmt.Fprintln(a.out, fallback)
	}
	return err
}

func (a *App) runLogin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	email := fs.String("email", "", "account e-mail")
	password := fs.String("password", "", "account password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	session, err := a.auth.SignIn(ctx, *email, *password)
	if err != nil {
		return a.fail(err, "Não foi possível entrar na conta. Tente novamente mais tarde.")
	}
	fmt.Fprintf(a.out, "Bem-vindo, %s!\n", session.User.Name)
	return nil
}

func (a *App) runSignUp(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("signup", flag.ContinueOnError)
	name := fs.String("name", "", "full name")
	email := fs.String("email", "", "account e-mail")
	tel := fs.String("tel", "", "contact phone")
	password := fs.String("password", "", "account password")
	avatarPath := fs.String("avatar", "", "avatar image file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var avatar product.StagedPhoto
	if *avatarPath != "" {
		staged, err := advert.StagePhotoFromFile(*avatarPath)
		if err != nil {
			return a.fail(err, "Não foi possível carregar a foto selecionada.")
		}
		avatar = staged
	}

	in := auth.SignUpInput{Name: *name, Email: *email, Tel: *tel, Password: *password}
	session, err := a.auth.SignUp(ctx, in, avatar)
	if err != nil {
		return a.fail(err, "Não foi possível criar a conta. Tente novamente mais tarde.")
	}
	fmt.Fprintf(a.out, "Conta criada. Bem-vindo, %s!\n", session.User.Name)
	return nil
}

func (a *App) runLogout() error {
	if err := a.auth.SignOut(); err != nil {
		return a.fail(err, "Não foi possível encerrar a sessão.")
	}
	fmt.Fprintln(a.out, "Sessão encerrada.")
	return nil
}

func (a *App) runBrowse(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("browse", flag.ContinueOnError)
	query := fs.String("query", "", "free text search")
	condition := fs.String("condition", "", "new or used")
	trade := fs.Bool("trade", false, "only listings accepting trade")
	payments := fs.String("payments", "", "comma separated payment keys")
	if err := fs.Parse(args); err != nil {
		return err
	}

	a.modal.SetQuery(*query)
	if *condition != "" {
		a.modal.ToggleCondition(*condition)
	}
	a.modal.SetAcceptTrade(*trade)
	if *payments != "" {
		a.modal.SetPaymentMethods(strings.Split(*payments, ","))
	}

	if err := a.modal.Apply(ctx); err != nil {
		return a.fail(err, "Não foi possível carregar os produtos.")
	}

	a.renderProducts(a.store.Filtered())
	return nil
}

func (a *App) runMyAds(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("my-ads", flag.ContinueOnError)
	preset := fs.String("filter", string(product.PresetActive), "owner listing preset")
	if err := fs.Parse(args); err != nil {
		return err
	}

	known := false
	for _, p := range product.OwnerPresets() {
		if p == product.OwnerPreset(*preset) {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("unknown filter %q", *preset)
	}

	if err := a.store.FetchOwn(ctx, product.Criteria{}); err != nil {
		return a.fail(err, "Não foi possível carregar os produtos.")
	}

	listings := product.ApplyOwnerPreset(product.OwnerPreset(*preset), a.store.OwnProducts())
	noun := "anúncios"
	if len(listings) == 1 {
		noun = "anúncio"
	}
	fmt.Fprintf(a.out, "%d %s\n", len(listings), noun)
	a.renderProducts(listings)
	return nil
}

func (a *App) runShow(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("show", flag.ContinueOnError)
	id := fs.String("id", "", "product id")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := a.store.FetchDetail(ctx, *id); err != nil {
		return a.fail(err, "Não foi possível carregar as informações do produto. Tente novamente mais tarde.")
	}

	detail, ok := a.store.Detail()
	if !ok {
		return product.ErrNoDetail
	}

	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "Produto:\t%s\n", detail.Name)
	fmt.Fprintf(w, "Descrição:\t%s\n", detail.Description)
	fmt.Fprintf(w, "Preço:\tR$ %s\n", advert.FormatPrice(detail.Price))
	fmt.Fprintf(w, "Condição:\t%s\n", conditionLabel(detail.IsNew))
	fmt.Fprintf(w, "Aceita troca:\t%s\n", yesNo(detail.AcceptTrade))
	if len(detail.PaymentMethods) > 0 {
		names := make([]string, 0, len(detail.PaymentMethods))
		for _, m := range detail.PaymentMethods {
			names = append(names, m.Name)
		}
		fmt.Fprintf(w, "Meios de pagamento:\t%s\n", strings.Join(names, ", "))
	}
	if detail.User != nil && detail.User.Name != "" {
		fmt.Fprintf(w, "Vendedor:\t%s\n", detail.User.Name)
	}
	for _, img := range a.store.Slides() {
		fmt.Fprintf(w, "Imagem:\t%s\n", a.client.ImageURL(img.Path))
	}
	w.Flush()

	if link, err := a.store.ContactSellerLink(); err == nil {
		fmt.Fprintf(a.out, "Entrar em contato: %s\n", link)
	}
	return nil
}

func (a *App) runPublish(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("publish", flag.ContinueOnError)
	id := fs.String("id", product.DraftID, "product id (0 creates a new advertisement)")
	name := fs.String("name", "", "advertisement title")
	description := fs.String("description", "", "product description")
	condition := fs.String("condition", "", "new or used")
	price := fs.String("price", "", "sale price, ex.: 1.234,56")
	trade := fs.Bool("trade", false, "accept trade offers")
	payments := fs.String("payments", "", "comma separated payment keys")
	photos := fs.String("photos", "", "comma separated image files")
	if err := fs.Parse(args); err != nil {
		return err
	}
	passed := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { passed[f.Name] = true })

	if err := a.flow.Begin(ctx, *id); err != nil {
		return a.fail(err, "Não foi possível carregar as informações do produto. Tente novamente mais tarde.")
	}

	for _, path := range splitList(*photos) {
		staged, err := advert.StagePhotoFromFile(path)
		if err != nil {
			return a.fail(err, "Não foi possível carregar a foto selecionada.")
		}
		if err := a.flow.AttachPhoto(staged); err != nil {
			return a.fail(err, "Não foi possível anexar a foto selecionada.")
		}
	}

	form := a.flow.Form()
	if *name != "" {
		form.Name = *name
	}
	if *description != "" {
		form.Description = *description
	}
	if *condition != "" {
		form.Condition = *condition
	}
	if *price != "" {
		form.Price = *price
	}
	// unlike the string flags, false is indistinguishable from "not
	// passed", so an edit must not clobber the loaded value
	if passed["trade"] {
		form.AcceptTrade = *trade
	}
	if keys := splitList(*payments); len(keys) > 0 {
		form.PaymentMethods = keys
	}

	if err := a.flow.Submit(form); err != nil {
		return a.fail(err, "Não foi possível avançar para próxima etapa. Tente novamente mais tarde.")
	}

	draft, err := a.flow.Preview()
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Pré visualização do anúncio:")
	a.renderProducts([]product.Product{draft.Product})

	productID, err := a.flow.Publish(ctx)
	if err != nil {
		return a.fail(err, "Não foi possível atualizar/cadastrar o produto. Tente novamente mais tarde.")
	}

	if *id == product.DraftID {
		fmt.Fprintf(a.out, "Produto cadastrado com sucesso (id %s)\n", productID)
	} else {
		fmt.Fprintf(a.out, "Produto editado com sucesso (id %s)\n", productID)
	}
	return nil
}

func (a *App) runActivate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("activate", flag.ContinueOnError)
	id := fs.String("id", "", "product id")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := a.store.FetchDetail(ctx, *id); err != nil {
		return a.fail(err, "Não foi possível carregar as informações do produto. Tente novamente mais tarde.")
	}
	if err := a.store.ToggleDetailActive(ctx); err != nil {
		return a.fail(err, "Não foi possível alterar o anúncio. Tente novamente mais tarde.")
	}

	if detail, ok := a.store.Detail(); ok && detail.Active() {
		fmt.Fprintln(a.out, "Produto reativado com sucesso")
	} else {
		fmt.Fprintln(a.out, "Produto desativado com sucesso")
	}
	return nil
}

func (a *App) runRemove(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("remove", flag.ContinueOnError)
	id := fs.String("id", "", "product id")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := a.store.FetchDetail(ctx, *id); err != nil {
		return a.fail(err, "Não foi possível carregar as informações do produto. Tente novamente mais tarde.")
	}
	if err := a.store.RemoveDetail(ctx); err != nil {
		return a.fail(err, "Não foi possível excluir o anúncio. Tente novamente mais tarde.")
	}
	fmt.Fprintln(a.out, "Anúncio removido")
	return nil
}

func (a *App) renderProducts(products []product.Product) {
	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNOME\tPREÇO\tCONDIÇÃO\tATIVO")
	for _, p := range products {
		fmt.Fprintf(w, "%s\t%s\tR$ %s\t%s\t%s\n",
			p.ID, p.Name, advert.FormatPrice(p.Price), conditionLabel(p.IsNew), yesNo(p.Active()))
	}
	w.Flush()
}

func conditionLabel(isNew bool) string {
	if isNew {
		return "Produto novo"
	}
	return "Produto usado"
}

func yesNo(v bool) string {
	if v {
		return "sim"
	}
	return "não"
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
