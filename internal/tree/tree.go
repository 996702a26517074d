// Package tree собирает вложенное дерево комментариев из плоского набора одной ветки.
//
// Набор читается из хранилища одним запросом (вместе с удалёнными узлами),
// группируется по parent_id и сортируется по sort_order внутри групп; после
// сортировки каждый узел посещается один раз. Результат не зависит от порядка
// входного набора.
package tree

import (
	"slices"
	"strings"

	"github.com/pribylovaa/commentary/internal/models"
)

// compare задаёт порядок отображения: sort_order, при равенстве - id.
func compare(a, b models.Comment) int {
	if c := a.SortOrder.Cmp(b.SortOrder); c != 0 {
		return c
	}

	return strings.Compare(a.ID, b.ID)
}

// group раскладывает плоский набор по parent_id с отсортированными группами.
// Дубликаты id (повторная строка во входе) отбрасываются.
func group(flat []models.Comment) map[string][]models.Comment {
	seen := make(map[string]struct{}, len(flat))
	groups := make(map[string][]models.Comment)

	for _, c := range flat {
		if _, ok := seen[c.ID]; ok {
			continue
		}
		seen[c.ID] = struct{}{}
		groups[c.ParentID] = append(groups[c.ParentID], c)
	}

	for k := range groups {
		slices.SortFunc(groups[k], compare)
	}

	return groups
}

// Roots возвращает корни плоского набора в порядке отображения.
func Roots(flat []models.Comment) []models.Comment {
	return group(flat)[""]
}

// frame - кадр явного стека обхода.
type frame struct {
	comment models.Comment
	kids    []models.Comment
	next    int
	built   []models.CommentNode
}

// Build собирает поддеревья для переданных корней (обычно страница корней)
// из полного плоского набора ветки. Корни выводятся в порядке sort_order.
// Узлы, недостижимые из roots (сироты), в результат не попадают.
func Build(flat []models.Comment, roots []models.Comment) []models.CommentNode {
	groups := group(flat)

	ordered := slices.Clone(roots)
	slices.SortFunc(ordered, compare)

	out := make([]models.CommentNode, 0, len(ordered))
	visited := make(map[string]struct{}, len(flat))

	for _, root := range ordered {
		if _, ok := visited[root.ID]; ok {
			continue
		}
		visited[root.ID] = struct{}{}

		stack := []*frame{{comment: root, kids: groups[root.ID]}}
		for len(stack) > 0 {
			top := stack[len(stack)-1]

			if top.next < len(top.kids) {
				child := top.kids[top.next]
				top.next++

				// Защита от циклов в повреждённых данных.
				if _, ok := visited[child.ID]; ok {
					continue
				}
				visited[child.ID] = struct{}{}

				stack = append(stack, &frame{comment: child, kids: groups[child.ID]})
				continue
			}

			node := models.CommentNode{Comment: View(top.comment), Children: top.built}
			stack = stack[:len(stack)-1]

			if len(stack) == 0 {
				out = append(out, node)
			} else {
				parent := stack[len(stack)-1]
				parent.built = append(parent.built, node)
			}
		}
	}

	return out
}

// View переводит комментарий в представление для контроллеров с редактированием удалённых.
func View(c models.Comment) models.CommentView {
	v := models.CommentView{
		ID:           c.ID,
		Scope:        c.Scope,
		ParentID:     c.ParentID,
		Depth:        c.Depth,
		SortOrder:    c.SortOrder.String(),
		Content:      c.Content,
		Author:       &models.Author{ID: c.AuthorID, Name: c.AuthorName},
		Status:       c.Status,
		LikeCount:    c.LikeCount,
		DislikeCount: c.DislikeCount,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}

	if c.IsDeleted() {
		Redact(&v)
	}

	return v
}

// Redact скрывает содержимое и автора удалённого узла. Дети узла не затрагиваются.
func Redact(v *models.CommentView) {
	v.Deleted = true
	v.Content = models.DeletedPlaceholder
	v.Author = nil
}

// Flatten разворачивает дерево в плоский список в порядке отображения (pre-order).
func Flatten(nodes []models.CommentNode) []models.CommentSummary {
	var out []models.CommentSummary

	stack := make([]models.CommentNode, 0, len(nodes))
	for i := len(nodes) - 1; i >= 0; i-- {
		stack = append(stack, nodes[i])
	}

	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		out = append(out, models.CommentSummary{CommentView: n.Comment, ChildCount: len(n.Children)})

		for i := len(n.Children) - 1; i >= 0; i-- {
			stack = append(stack, n.Children[i])
		}
	}

	return out
}
